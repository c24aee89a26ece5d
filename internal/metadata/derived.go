package metadata

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// lengthBuckets maps a minimum duration to the archive's podfic length tag.
// Ordered longest first; the first bucket the duration reaches wins.
var lengthBuckets = []struct {
	hours   int
	minutes int
	tag     string
}{
	{20, 0, "Podfic Length: Over 20 Hours"},
	{15, 0, "Podfic Length: 15-20 Hours"},
	{10, 0, "Podfic Length: 10-15 Hours"},
	{7, 0, "Podfic Length: 7-10 Hours"},
	{6, 0, "Podfic Length: 6-7 Hours"},
	{5, 0, "Podfic Length: 5-6 Hours"},
	{4, 30, "Podfic Length: 4.5-5 Hours"},
	{4, 0, "Podfic Length: 4-4.5 Hours"},
	{3, 30, "Podfic Length: 3.5-4 Hours"},
	{3, 0, "Podfic Length: 3-3.5 Hours"},
	{2, 30, "Podfic Length: 2.5-3 Hours"},
	{2, 0, "Podfic Length: 2-2.5 Hours"},
	{1, 30, "Podfic Length: 1.5-2 Hours"},
	{1, 0, "Podfic Length: 1-1.5 Hours"},
	{0, 45, "Podfic Length: 45-60 Minutes"},
	{0, 30, "Podfic Length: 30-45 Minutes"},
	{0, 20, "Podfic Length: 20-30 Minutes"},
	{0, 10, "Podfic Length: 10-20 Minutes"},
	{0, 0, "Podfic Length: 0-10 Minutes"},
}

// AudioLengthTag returns the archive's length tag for an "H:MM:SS" duration.
func AudioLengthTag(length string) (string, error) {
	parts := strings.Split(strings.TrimSpace(length), ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("audio length %q: want H:MM:SS", length)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("audio length %q: %w", length, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("audio length %q: %w", length, err)
	}
	for _, bucket := range lengthBuckets {
		if hours > bucket.hours || (hours == bucket.hours && minutes >= bucket.minutes) {
			return bucket.tag, nil
		}
	}
	return lengthBuckets[len(lengthBuckets)-1].tag, nil
}

// podficTags are always added to the additional tags before posting.
var podficTags = []string{"Podfic", "Audio Format: MP3", "Audio Format: Streaming"}

// AddPodficTags appends the fixed podfic tags and the length tag derived from
// the recorded audio length to the additional tags, skipping duplicates.
// Requires a resolved Audio Length.
func (s *Store) AddPodficTags() error {
	length := s.Get(FieldAudioLength)
	if length.IsPlaceholder() {
		return fmt.Errorf("metadata: %s is not filled in yet", FieldAudioLength)
	}
	lengthTag, err := AudioLengthTag(length.Scalar())
	if err != nil {
		return err
	}

	tags := s.Get(FieldAdditionalTags).List()
	for _, tag := range append(append([]string(nil), podficTags...), lengthTag) {
		if !contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return s.Set(FieldAdditionalTags, List(tags...))
}

// PrefixWorkType prefixes the work title with the bracketed work type,
// e.g. "[podfic] Some Title". Idempotent.
func (s *Store) PrefixWorkType() error {
	prefix := fmt.Sprintf("[%s]", s.Get(FieldWorkType).Scalar())
	title := s.Get(FieldWorkTitle).Scalar()
	if strings.HasPrefix(title, prefix) {
		return nil
	}
	return s.Set(FieldWorkTitle, Scalar(prefix+" "+title))
}

// StampPostingDate records now as the posting date.
func (s *Store) StampPostingDate(now time.Time) error {
	return s.Set(FieldPostingDate, Scalar(now.Format("02-01-2006")))
}

// ArtistCredit composes the audio files' artist string from the creator,
// co-creator, and writer lists, e.g. "Reader1, Reader2 (w:Writer)".
// Placeholder entries are skipped.
func (s *Store) ArtistCredit() string {
	names := func(pairs []Link) []string {
		out := make([]string, 0, len(pairs))
		for _, pair := range pairs {
			if pair.IsPlaceholder() {
				continue
			}
			out = append(out, pair.Name)
		}
		return out
	}

	readers := names(s.Get(FieldCreators).Pairs())
	readers = append(readers, names(s.Get(FieldCoCreators).Pairs())...)
	credit := strings.Join(readers, ", ")

	if writers := names(s.Get(FieldWriter).Pairs()); len(writers) > 0 {
		credit += fmt.Sprintf(" (w:%s)", strings.Join(writers, ", "))
	}
	return credit
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
