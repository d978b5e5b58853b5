package minerstore

import (
	"github.com/pkg/errors"
	"github.com/unicornultrafoundation/go-helios/u2udb"
)

// idStore keeps the id of the last applied data migration.
type idStore struct {
	table u2udb.Store
	key   []byte
	crit  func(error)
}

func newIDStore(table u2udb.Store, crit func(error)) *idStore {
	return &idStore{
		table: table,
		key:   []byte("id"),
		crit:  crit,
	}
}

func (p *idStore) GetID() string {
	id, err := p.table.Get(p.key)
	if err != nil {
		p.crit(err)
	}
	if id == nil {
		return ""
	}
	return string(id)
}

func (p *idStore) SetID(id string) {
	if err := p.table.Put(p.key, []byte(id)); err != nil {
		p.crit(err)
	}
}

type migration struct {
	id    string
	apply func() error
}

func (s *Store) migrations() []migration {
	return []migration{
		{id: "fst-1"},
	}
}

// Migrate brings the data to the layout of this version.
// A blank database is stamped with the latest migration id.
func (s *Store) Migrate() error {
	ids := newIDStore(s.table.Version, func(err error) {
		s.fault(s.table.Version, err)
	})
	list := s.migrations()
	last := list[len(list)-1].id

	current := ids.GetID()
	if current == "" {
		ids.SetID(last)
		return s.Commit()
	}

	pos := -1
	for i, m := range list {
		if m.id == current {
			pos = i
			break
		}
	}
	if pos < 0 {
		return errors.Errorf("unknown data layout %q, the database is written by a newer version", current)
	}
	for _, m := range list[pos+1:] {
		s.Log.Warn("Applying data migration", "id", m.id)
		if m.apply != nil {
			if err := m.apply(); err != nil {
				s.Rollback()
				return errors.Wrapf(err, "migration %s", m.id)
			}
		}
		ids.SetID(m.id)
		if err := s.Commit(); err != nil {
			return err
		}
	}
	return nil
}
