package astrosched

type Database interface {
	Close() error
	Migrate() error
}
