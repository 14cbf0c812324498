package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inkpost/app/config"
	"inkpost/app/repositories"
)

var errCancelled = errors.New("operation cancelled")

// confirm asks question on out and reads a y/N answer from in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}

func requireBadger(cfg config.Config, op string) error {
	if cfg.Store != config.StoreBadger {
		return fmt.Errorf("%s is only supported for the badger store, not %q", op, cfg.Store)
	}
	return nil
}

// initDB creates an empty database. SQL stores get their schema applied.
func initDB(ctx context.Context, cfg config.Config, out io.Writer) error {
	if cfg.Store == config.StoreBadger {
		if _, err := os.Stat(cfg.DBPath); err == nil {
			fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
			return nil
		}
		if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := store.Close(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Database initialized successfully")
	return nil
}

// clean removes the database directory.
func clean(cfg config.Config, yes bool, in io.Reader, out io.Writer) error {
	if err := requireBadger(cfg, "clean"); err != nil {
		return err
	}
	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "Database is already clean (does not exist)")
		return nil
	}

	if !yes && !confirm(in, out, "Are you sure you want to clean the database? This cannot be undone.") {
		return errCancelled
	}

	if err := os.RemoveAll(cfg.DBPath); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	fmt.Fprintln(out, "Database cleaned successfully")
	return nil
}

// backup writes a full Badger backup into cfg.BackupDir and returns its path.
func backup(cfg config.Config, out io.Writer) (string, error) {
	if err := requireBadger(cfg, "backup"); err != nil {
		return "", err
	}
	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		return "", fmt.Errorf("no database exists at %s to backup", cfg.DBPath)
	}
	if err := os.MkdirAll(cfg.BackupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	db, err := repositories.OpenBadgerDB(cfg.DBPath)
	if err != nil {
		return "", err
	}
	defer db.Close()

	backupFile := filepath.Join(cfg.BackupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}

	fmt.Fprintf(out, "Database backed up successfully to %s\n", backupFile)
	return backupFile, nil
}

// restore replaces the database with the contents of backupFile.
func restore(cfg config.Config, backupFile string, yes bool, in io.Reader, out io.Writer) (err error) {
	if err := requireBadger(cfg, "restore"); err != nil {
		return err
	}

	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	if err != nil {
		return fmt.Errorf("failed to stat backup file: %w", err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	if _, statErr := os.Stat(cfg.DBPath); statErr == nil {
		if !yes && !confirm(in, out, "Existing database found. Do you want to replace it?") {
			return errCancelled
		}
		if err := os.RemoveAll(cfg.DBPath); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}
	if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := repositories.OpenBadgerDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	// Load panics on some corrupt inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to restore database: %v", r)
		}
	}()
	if err := db.Load(f, 4); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}

	fmt.Fprintln(out, "Database restored successfully")
	return nil
}
