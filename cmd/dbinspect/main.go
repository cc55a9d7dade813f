// Command dbinspect dumps the engine's on-device state for debugging.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/kinderhq/petnames-core/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "Petnames", "data", "db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	inspectCatalog(db)
	inspectIdentity(db)
	inspectSwipes(db)
	inspectPrefs(db)
}

func inspectCatalog(db *badger.DB) {
	fmt.Println("--- Catalog ---")

	var snapshot domain.CatalogSnapshot
	if readKey(db, "catalog:cached", &snapshot) {
		fmt.Printf("Cached snapshot: version %d, %d sets, %d entries\n",
			snapshot.Version, len(snapshot.NameSets), snapshot.EntryCount())
		for i, set := range snapshot.NameSets {
			if i >= 5 {
				fmt.Printf("  ... and %d more sets\n", len(snapshot.NameSets)-5)
				break
			}
			fmt.Printf("  [%s] %s (%d names)\n", set.Slug, set.Title, len(set.Names))
		}
	} else {
		fmt.Println("No cached snapshot, the bundled catalog serves queries")
	}

	var lastSync time.Time
	if readKey(db, "catalog:last_sync", &lastSync) {
		fmt.Printf("Last sync: %s (%s ago)\n", lastSync.Format(time.RFC3339), time.Since(lastSync).Round(time.Minute))
	} else {
		fmt.Println("Never synced")
	}
	fmt.Println()
}

func inspectIdentity(db *badger.DB) {
	fmt.Println("--- Identity ---")

	var identity domain.DeviceIdentity
	if readKey(db, "device:identity", &identity) {
		fmt.Printf("User ID: %s\n", identity.UserID)
	} else {
		fmt.Println("No remote identity")
	}

	var household string
	if readKey(db, "household:current", &household) {
		fmt.Printf("Household: %s\n", household)
	} else {
		fmt.Println("Not in a household")
	}
	fmt.Println()
}

func inspectSwipes(db *badger.DB) {
	fmt.Println("--- Swipes ---")

	var swiped []string
	readKey(db, "swipe:names", &swiped)
	fmt.Printf("Swiped names: %d\n", len(swiped))

	var likes []domain.LikedName
	readKey(db, "likes:local", &likes)
	fmt.Printf("Local likes: %d\n", len(likes))
	for i, l := range likes {
		if i >= 10 {
			fmt.Printf("  ... and %d more\n", len(likes)-10)
			break
		}
		fmt.Printf("  %s (%s, %s)\n", l.Name, l.Gender, l.SetTitle)
	}
	fmt.Println()
}

func inspectPrefs(db *badger.DB) {
	fmt.Println("--- Preferences ---")

	var filters domain.Filters
	if readKey(db, "prefs:filters", &filters) {
		fmt.Printf("Filters: gender=%s starts_with=%s max_length=%d\n",
			filters.Gender, filters.StartsWith, filters.MaxLength)
	} else {
		fmt.Println("Filters: defaults")
	}

	var langs []string
	if readKey(db, "prefs:languages", &langs) {
		fmt.Printf("Languages: %v\n", langs)
	} else {
		fmt.Println("Languages: defaults")
	}

	var styles []string
	if readKey(db, "prefs:styles", &styles) {
		fmt.Printf("Styles: %v\n", styles)
	} else {
		fmt.Println("Styles: all")
	}
}

// readKey loads and unmarshals a single key. Returns false when absent.
func readKey(db *badger.DB, key string, dest any) bool {
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
	return err == nil
}
