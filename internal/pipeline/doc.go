// Package pipeline sequences a podfic project through its lifecycle:
// seed from downloaded parent-work HTML, draft the archive post, and
// promote the posted work.
//
// The pipeline is strictly sequential per project. Extraction completes
// before tag normalization, which completes before the record is trusted;
// the validation gate runs immediately before every render. External
// collaborators (audio tagging, uploads, posting) sit behind interfaces and
// write their results back through the record's single mutation entrypoint;
// a nil collaborator skips its step.
package pipeline
