package internal

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

var (
	resumeChan  = make(chan struct{}, 1)
	currentPort int
)

type InspectRow struct {
	Key       string
	Type      string
	Timestamp string
	EntityID  string
	Detail    string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

func Inspect(db *badger.DB, port int, endpoint string, mapper RowMapper, statsProvider StatsProvider, prefix string, fn func()) {
	StartDebugServer(db, port, endpoint, mapper, statsProvider)

	if fn != nil {
		fn()
	}

	Wait(prefix)
}

func StartDebugServer(db *badger.DB, port int, endpoint string, mapper RowMapper, statsProvider StatsProvider) {
	currentPort = port
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	if mapper == nil {
		mapper = DefaultMapper
	}

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "room:"
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}

		// Récupération des statistiques dynamiques pour le dashboard
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		_ = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				_ = item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val))
					return nil
				})
			}
			return nil
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	mux.HandleFunc("/resume", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-resumeChan:
		default:
		}
		resumeChan <- struct{}{}
		fmt.Fprint(w, "RESUMED")
	})

	go func() {
		// Écoute sur toutes les interfaces pour permettre l'accès réseau
		_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux)
	}()
}

func Wait(prefix string) {
	url := fmt.Sprintf("http://localhost:%d/inspect?prefix=%s", currentPort, prefix)
	fmt.Printf("\n--- PAUSED ---\n\n%s\n\n--------------\n", url)
	<-resumeChan
}

// DefaultMapper understands the store's key families and renders the JSON
// payload of the row in a human-scannable form.
func DefaultMapper(key string, val []byte) InspectRow {
	parts := strings.Split(key, ":")
	row := InspectRow{
		Key:       key,
		Type:      "RAW",
		Timestamp: "--:--:--",
		EntityID:  "--------",
		Detail:    "Size: " + strconv.Itoa(len(val)) + " bytes",
	}

	switch parts[0] {
	case "room":
		row.Type = "ROOM"
		if len(parts) >= 3 {
			if tsNano, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
				row.Timestamp = time.Unix(0, tsNano).Format("15:04:05")
			}
			row.EntityID = shortID(parts[2])
		}
		var room struct {
			Name           string `json:"name"`
			Status         string `json:"status"`
			CurrentPlayers int    `json:"currentPlayers"`
			MaxPlayers     int    `json:"maxPlayers"`
		}
		if err := json.Unmarshal(val, &room); err == nil {
			row.Detail = fmt.Sprintf("%s [%s] %d/%d", room.Name, room.Status, room.CurrentPlayers, room.MaxPlayers)
		}
	case "part":
		row.Type = "PARTICIPANT"
		if len(parts) >= 3 {
			row.EntityID = shortID(parts[1])
			row.Detail = "user: " + parts[2]
		}
	case "user":
		row.Type = "USER"
		if len(parts) >= 2 {
			row.Detail = parts[1]
		}
	case "score":
		row.Type = "SCORE"
		if len(parts) >= 3 {
			row.EntityID = shortID(parts[1])
			if tsNano, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
				row.Timestamp = time.Unix(0, tsNano).Format("15:04:05")
			}
		}
		var score struct {
			Points    int `json:"points"`
			BotPoints int `json:"botPoints"`
			Correct   int `json:"correct"`
			Questions int `json:"questions"`
		}
		if err := json.Unmarshal(val, &score); err == nil {
			row.Detail = fmt.Sprintf("%d pts (bot %d) %d/%d correct", score.Points, score.BotPoints, score.Correct, score.Questions)
		}
	case "question":
		row.Type = "QUESTION"
		if len(parts) >= 2 {
			row.EntityID = shortID(parts[1])
		}
		var question struct {
			Prompt string `json:"prompt"`
		}
		if err := json.Unmarshal(val, &question); err == nil {
			row.Detail = question.Prompt
		}
	}
	return row
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
