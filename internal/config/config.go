package config

import (
	"os"
	"path/filepath"
)

const (
	AppName    = "FastRep"
	AppVersion = "2.0.8"
)

type Config struct {
	Addr      string
	DBPath    string
	DataDir   string
	StaticDir string
	LogLevel  string
}

func Load() Config {
	addr := os.Getenv("FASTREP_ADDR")
	if addr == "" {
		addr = "127.0.0.1:5000"
	}
	dataDir := os.Getenv("FASTREP_DATA_DIR")
	if dataDir == "" {
		dataDir = defaultDataDir()
	}
	path := os.Getenv("FASTREP_DB_PATH")
	if path == "" {
		path = filepath.Join(dataDir, "fastrep.db")
	}
	staticDir := os.Getenv("FASTREP_STATIC_DIR")
	if staticDir == "" {
		staticDir = "./ui/dist"
	}
	logLevel := os.Getenv("FASTREP_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return Config{
		Addr:      addr,
		DBPath:    filepath.Clean(path),
		DataDir:   filepath.Clean(dataDir),
		StaticDir: filepath.Clean(staticDir),
		LogLevel:  logLevel,
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(home, ".fastrep")
}
