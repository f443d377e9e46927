package models

// Settings holds the user preferences persisted in the store.
// It is loaded once at startup, passed explicitly to whatever needs it,
// and saved back after every mutation. There is no ambient global copy.
type Settings struct {
	// WeighOrphans biases draws toward sparsely linked notes.
	WeighOrphans bool `json:"weigh_orphans"`

	// SparkDir is the vault-relative directory for new reflection notes.
	SparkDir string `json:"spark_dir"`

	// CollectionNote, when non-empty, names a vault-relative note that
	// collects a link to every recorded spark.
	CollectionNote string `json:"collection_note,omitempty"`

	// MuseEnabled allows the session to request generated prompts.
	MuseEnabled bool `json:"muse_enabled"`
}

// DefaultSettings returns the settings used before any are persisted.
func DefaultSettings() Settings {
	return Settings{
		WeighOrphans: true,
		SparkDir:     "sparks",
	}
}
