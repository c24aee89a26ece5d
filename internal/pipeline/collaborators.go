package pipeline

import (
	"context"

	"podpost/internal/project"
	"podpost/internal/render"
)

// AudioTagger tags the project's audio files with the artist credit and
// reports the total duration in H:MM:SS form.
type AudioTagger interface {
	TagAudio(ctx context.Context, proj *project.Project, artist string) (length string, err error)
}

// ArchiveLinks are the URLs an archive upload produces.
type ArchiveLinks struct {
	Item      string
	Cover     string
	Streaming []string
}

// ArchiveUploader uploads the project's files to the long-term archive.
type ArchiveUploader interface {
	UploadArchive(ctx context.Context, proj *project.Project, title string) (ArchiveLinks, error)
}

// DriveUploader uploads the audio to shared cloud storage and returns the
// folder link.
type DriveUploader interface {
	UploadDrive(ctx context.Context, proj *project.Project, title string) (url string, err error)
}

// Poster drafts the work on the posting site from the rendered form body
// and returns the new work's URL.
type Poster interface {
	DraftWork(ctx context.Context, payload render.Payload) (workURL string, err error)
}
