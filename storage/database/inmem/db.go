package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/user"
)

type (
	DB struct {
		user     *userTable
		progress *progressTable
	}

	userTable struct {
		table map[string]*user.User
		mutex sync.RWMutex
	}

	progressTable struct {
		table map[string][]string // userID -> completed item ids
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		progress: &progressTable{table: make(map[string][]string)},
	}
}

// Reset empties all tables; tests only.
func (db *DB) Reset() {
	db.user.mutex.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.mutex.Unlock()

	db.progress.mutex.Lock()
	db.progress.table = make(map[string][]string)
	db.progress.mutex.Unlock()
}
