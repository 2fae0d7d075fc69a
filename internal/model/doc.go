// Package model defines the domain types and value objects for emojimix.
//
// This package contains pure data structures with no external dependencies.
// All entities (EmojiCluster, HexIdentifier, CandidateURL, MixResult) are
// transient: they are created per incoming message and never persisted.
//
// The package also defines the error taxonomy shared by every pipeline stage
// (InputError, EncodingError, TemplateError, ProbeTransientError) and the
// CLI exit codes (ExitCode) carried by CLIError.
package model
