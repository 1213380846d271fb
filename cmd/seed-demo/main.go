// Утилита для наполнения базы демонстрационными данными.
// Используется для стендов и локальной разработки.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"ttsguard/database"
)

func main() {
	dbPath := flag.String("db", "ttsguard.db", "путь к файлу базы данных")
	reset := flag.Bool("reset", false, "очистить базу перед заполнением")
	date := flag.String("date", "", "дата отсчета в формате YYYY-MM-DD (по умолчанию сегодня)")
	flag.Parse()

	today := time.Now().UTC()
	if *date != "" {
		parsed, err := time.Parse("2006-01-02", *date)
		if err != nil {
			slog.Error("invalid -date value", "value", *date, "error", err)
			os.Exit(1)
		}
		today = parsed
	}

	db, err := database.NewDB(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if *reset {
		if err := db.Reset(); err != nil {
			slog.Error("failed to reset database", "error", err)
			os.Exit(1)
		}
		slog.Info("database reset")
	}

	if err := db.EnsureDemoData(today); err != nil {
		slog.Error("failed to seed demo data", "error", err)
		os.Exit(1)
	}

	slog.Info("demo data ready", "path", *dbPath, "reference_date", today.Format("2006-01-02"))
}
