package domain

const (
	// ManifestFileName is the default name of the session manifest.
	ManifestFileName = "handoff.yaml"

	// ManifestVersion is the manifest schema version understood by the loader.
	ManifestVersion = "1"

	// DefaultSessionName is used when a manifest does not name its session.
	DefaultSessionName = "session"

	// DefaultStateDir holds state kept between runs.
	DefaultStateDir = ".handoff"

	// DigestStoreFile is the digest history file inside the state directory.
	DigestStoreFile = "digests.json"

	// EnvPrefix prefixes every environment setting.
	EnvPrefix = "HANDOFF_"
)
