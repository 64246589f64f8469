package splash

import (
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNoAsset is returned when a named asset is not in the catalog.
var ErrNoAsset = errors.New("splash: no such asset")

// Asset describes an image held in an AssetDB.
type Asset struct {
	Name   string
	SHA1   string
	Format Format
	Width  int
	Height int
}

// AssetDB is a catalog of encoded splash images. Images are validated by
// decoding them when added and stored zstd compressed.
type AssetDB struct {
	db     *sql.DB
	logger *log.Logger
}

// NewAssetDB opens or creates the catalog in file.
func NewAssetDB(file string, logger *log.Logger) (*AssetDB, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, format INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &AssetDB{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the catalog.
func (db *AssetDB) Close() error {
	return db.db.Close()
}

type entry struct {
	Asset
	data []byte
}

// prepare decodes b and compresses it ready for storing.
func (db *AssetDB) prepare(name string, b []byte) (*entry, error) {
	m, f, err := Decode(b, db.logger)
	if err != nil {
		return nil, err
	}

	return &entry{
		Asset: Asset{
			Name:   name,
			SHA1:   fmt.Sprintf("%X", sha1.Sum(b)),
			Format: f,
			Width:  m.Width,
			Height: m.Height,
		},
		data: compress(b),
	}, nil
}

func (db *AssetDB) store(e *entry) error {
	var sha string
	switch err := db.db.QueryRow("SELECT sha1 FROM asset WHERE name = ?", e.Name).Scan(&sha); err {
	case sql.ErrNoRows:
		if _, err := db.db.Exec("INSERT INTO asset (name, sha1, format, width, height, data) VALUES (?, ?, ?, ?, ?, ?)", e.Name, e.SHA1, int(e.Format), e.Width, e.Height, e.data); err != nil {
			return err
		}
		db.logger.Printf("splash: added %q (%v %dx%d)", e.Name, e.Format, e.Width, e.Height)
	case nil:
		if sha == e.SHA1 {
			db.logger.Printf("splash: %q is unchanged", e.Name)
			return nil
		}
		if _, err := db.db.Exec("UPDATE asset SET sha1 = ?, format = ?, width = ?, height = ?, data = ? WHERE name = ?", e.SHA1, int(e.Format), e.Width, e.Height, e.data, e.Name); err != nil {
			return err
		}
		db.logger.Printf("splash: replaced %q (%v %dx%d)", e.Name, e.Format, e.Width, e.Height)
	default:
		return err
	}
	return nil
}

// Add stores the encoded image b as name, replacing any existing asset with
// the same name. The image must decode.
func (db *AssetDB) Add(name string, b []byte) (*Asset, error) {
	e, err := db.prepare(name, b)
	if err != nil {
		return nil, err
	}
	if err := db.store(e); err != nil {
		return nil, err
	}
	return &e.Asset, nil
}

// Get returns the encoded image stored as name.
func (db *AssetDB) Get(name string) ([]byte, error) {
	var data []byte
	switch err := db.db.QueryRow("SELECT data FROM asset WHERE name = ?", name).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, ErrNoAsset
	case nil:
		return decompress(data)
	default:
		return nil, err
	}
}

// List returns every asset ordered by name.
func (db *AssetDB) List() ([]Asset, error) {
	rows, err := db.db.Query("SELECT name, sha1, format, width, height FROM asset ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		var a Asset
		var f int
		if err := rows.Scan(&a.Name, &a.SHA1, &f, &a.Width, &a.Height); err != nil {
			return nil, err
		}
		a.Format = Format(f)
		assets = append(assets, a)
	}

	return assets, rows.Err()
}

// Remove deletes the asset stored as name.
func (db *AssetDB) Remove(name string) error {
	result, err := db.db.Exec("DELETE FROM asset WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoAsset
	}
	return nil
}
