package types

// Backend selects the document store implementation.
type Backend string

const (
	BackendFirestore Backend = "firestore"
	BackendSQLite    Backend = "sqlite"
)

// EmulatorProjectID is the project the Firestore emulator serves when no
// PROJECT_ID is configured.
const EmulatorProjectID = "demo-tpadmin"

// Ordering controls how the delete and insert phases of a lesson upload
// relate to each other.
type Ordering string

const (
	// OrderSequential waits for every delete to commit before inserting.
	OrderSequential Ordering = "sequential"

	// OrderConcurrent starts both phases at once.
	OrderConcurrent Ordering = "concurrent"
)

// Credentials identifies the service account used for Firestore.
type Credentials struct {
	ProjectID   string `json:"project_id" yaml:"project_id" env:"PROJECT_ID"`
	PrivateKey  string `json:"private_key" yaml:"private_key" env:"PRIVATE_KEY"`
	ClientEmail string `json:"client_email" yaml:"client_email" env:"CLIENT_EMAIL"`
}

// IsComplete reports whether all three credential fields are set.
func (c Credentials) IsComplete() bool {
	return c.ProjectID != "" && c.PrivateKey != "" && c.ClientEmail != ""
}

// StoreConfig holds settings for opening a document store.
type StoreConfig struct {
	// Backend is firestore (default) or sqlite.
	Backend Backend `json:"backend" yaml:"backend"`

	// Emulator points the Firestore client at EmulatorHost.
	Emulator bool `json:"emulator" yaml:"emulator"`

	// EmulatorHost is the local emulator address (default localhost:8080).
	EmulatorHost string `json:"emulator_host" yaml:"emulator_host"`

	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string `json:"sqlite_path" yaml:"sqlite_path"`

	Credentials Credentials `json:"-" yaml:"-"`
}

// UploadConfig holds settings for the uploadLessons command.
type UploadConfig struct {
	StoreConfig `yaml:",inline"`

	// FilePath is the lesson text file (default ./data/lessons.txt).
	FilePath string `json:"file_path" yaml:"file_path"`

	// Ordering selects sequential or concurrent delete/insert phases.
	Ordering Ordering `json:"ordering" yaml:"ordering"`

	// BatchSize caps the writes per committed batch (default 500).
	BatchSize int `json:"batch_size" yaml:"batch_size"`
}
