package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateArtifact is raised when an artifact is stored twice for the same definition
	// without an intervening retrieval.
	ErrDuplicateArtifact = zerr.New("artifact already stored for definition")

	// ErrMissingArtifact is raised when no artifact is stored for the requested definition.
	ErrMissingArtifact = zerr.New("no artifact was produced for definition")

	// ErrMissingWitness is raised when a store or retrieve call is made without a scope witness.
	ErrMissingWitness = zerr.New("scope witness is required")

	// ErrScopeExpired is returned when an artifact or witness scope has already been closed.
	ErrScopeExpired = zerr.New("scope is no longer active")

	// ErrNoBody is returned when analysis is requested for a specification-only declaration.
	ErrNoBody = zerr.New("specification-only declaration has no body to analyze")

	// ErrInvalidBody is returned when a procedure body is malformed.
	ErrInvalidBody = zerr.New("invalid procedure body")

	// ErrInvalidFact is returned when a borrow-checker fact refers to a location outside the body.
	ErrInvalidFact = zerr.New("invalid borrow-checker fact")

	// ErrInvalidPoint is returned when a location point cannot be parsed.
	ErrInvalidPoint = zerr.New("invalid point, expected Start(bbN[i]) or Mid(bbN[i])")

	// ErrDuplicateDefinition is returned when a manifest declares the same definition twice.
	ErrDuplicateDefinition = zerr.New("duplicate definition id")

	// ErrMissingProcedureName is returned when a manifest procedure has no name.
	ErrMissingProcedureName = zerr.New("missing procedure name")

	// ErrUnsupportedVersion is returned when the manifest version is not understood.
	ErrUnsupportedVersion = zerr.New("unsupported manifest version")

	// ErrConfigReadFailed is returned when the manifest file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read manifest")

	// ErrConfigParseFailed is returned when the manifest file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse manifest")

	// ErrSettingsParseFailed is returned when environment settings cannot be parsed.
	ErrSettingsParseFailed = zerr.New("failed to parse settings from environment")

	// ErrPhaseAborted is returned when a pipeline phase stops on a cache contract violation.
	ErrPhaseAborted = zerr.New("pipeline phase aborted")

	// ErrAnalysisFailed is returned when the producer fails for a procedure.
	ErrAnalysisFailed = zerr.New("analysis failed")

	// ErrEncodingFailed is returned when the consumer fails for an artifact.
	ErrEncodingFailed = zerr.New("encoding failed")

	// ErrPipelineFailed is returned when a pipeline run fails.
	ErrPipelineFailed = zerr.New("pipeline run failed")

	// ErrUnknownReportFormat is returned when the requested report format is not supported.
	ErrUnknownReportFormat = zerr.New("unknown report format, expected 'text' or 'json'")
)
