package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"deepdive_server/dataset"
	"deepdive_server/logic"
	"deepdive_server/network"
	"deepdive_server/storage"
)

// themeLogger stands in for the ambient-background service, which
// subscribes to theme toggles instead of sharing objects with the game.
type themeLogger struct{}

func (themeLogger) ThemeChanged(dark bool) {
	logrus.WithField("dark", dark).Info("theme toggled")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file, using process environment")
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(envOr("DEEPDIVE_LOG_LEVEL", "info")); err == nil {
		logrus.SetLevel(lvl)
	}

	// 1. Load Config
	cfg := logic.DefaultConfig()
	if path := os.Getenv("DEEPDIVE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			logrus.WithError(err).Fatal("error loading config")
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			logrus.WithError(err).Fatal("parse config error")
		}
	}
	logic.ClampGameConfig(cfg)

	// 2. Persistence
	store, err := storage.Open(envOr("DEEPDIVE_DB", "deepdive.db"))
	if err != nil {
		logrus.WithError(err).Fatal("failed to open reward store")
	}
	defer store.Close()

	// 3. Init Room
	room := network.NewRoom("main", cfg, store)
	room.SubscribeTheme(themeLogger{})

	if qPath := os.Getenv("DEEPDIVE_QUESTIONS"); qPath != "" {
		raw, err := os.ReadFile(qPath)
		if err != nil {
			logrus.WithError(err).Fatal("error loading questions file")
		}
		qs, accepted, perr := dataset.Parse(string(raw), dataset.FromHint(filepath.Ext(qPath)))
		if perr != nil {
			logrus.WithError(perr).Fatal("questions file unusable")
		}
		room.SetDefaultQuestions(qs, accepted)
		logrus.WithField("accepted", accepted).Info("default question set loaded")
	}
	go room.Run()

	// 4. Router Setup
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		network.ServeWs(room, w, r)
	})

	mux.HandleFunc("/scores", func(w http.ResponseWriter, r *http.Request) {
		top, err := store.TopScores(10)
		if err != nil {
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(top)
	})

	// Health Check Endpoint (for future load balancers/k8s)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 5. Start Server
	addr := envOr("DEEPDIVE_ADDR", ":8080")
	logrus.Infof("Deep Dive server listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logrus.WithError(err).Fatal("ListenAndServe")
	}
}
