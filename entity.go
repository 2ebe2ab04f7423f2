package autolink

import (
	"database/sql"

	"github.com/riverfjs/autolink-go/internal/source"
	"github.com/riverfjs/autolink-go/internal/types"
)

// 导出类型别名
type (
	Entity    = types.Entity
	MatchKind = types.MatchKind

	// EntitySource is an ordered, refreshable collection of entities.
	EntitySource = source.Source
	StaticSource = source.Static
	YAMLSource   = source.YAMLFile
	SQLSource    = source.SQL
)

const (
	MatchExact       = types.MatchExact
	MatchInsensitive = types.MatchInsensitive
)

// NewEntity returns an Entity linking alias to key.
func NewEntity(key, alias string) Entity {
	return Entity{Key: key, Alias: alias}
}

// NewStaticSource returns an in-memory source holding entities in order.
func NewStaticSource(entities ...Entity) *StaticSource {
	return source.NewStatic(entities...)
}

// NewYAMLSource returns a source that reads a things file on every refresh.
func NewYAMLSource(path string) *YAMLSource {
	return source.NewYAMLFile(path)
}

// NewSQLSource returns a source that runs query against db on every refresh.
// An empty query selects key and alias from the things table.
func NewSQLSource(db *sql.DB, query string) *SQLSource {
	return source.NewSQL(db, query)
}

// OpenSQLiteSource opens a SQLite notes database as an entity source.
func OpenSQLiteSource(path, query string) (*SQLSource, error) {
	return source.OpenSQLite(path, query)
}
