package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/kgcyyds/miniob-2024/pkg/config"
	"github.com/kgcyyds/miniob-2024/pkg/engine"
	"github.com/kgcyyds/miniob-2024/pkg/logging"
	"github.com/kgcyyds/miniob-2024/pkg/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	cfg := config.Load()

	if err := logging.Init(logging.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogPath,
		Format:     cfg.LogFormat,
	}); err != nil {
		log.Fatalf("failed to initialize logging: %v", err)
	}
	defer logging.Close()

	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			log.Fatalf("failed to create data directory: %v", err)
		}
	}

	showSplashScreen()

	eng := engine.New(cfg.DataDir)
	logging.Info("engine initialized", "dataDir", cfg.DataDir)

	sess := eng.NewSession()

	if cfg.DemoMode {
		runDemoMode(sess)
	}

	if cfg.ImportFile != "" {
		if err := importData(sess, cfg.ImportFile); err != nil {
			log.Fatalf("failed to import data: %v", err)
		}
	}

	model := ui.NewModel(eng)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		log.Fatalf("error running program: %v", err)
	}
}

func showSplashScreen() {
	splash := `
╔══════════════════════════════════════════════════════════════╗
║                          storesql                             ║
║           an embedded relational engine, in Go                ║
╚══════════════════════════════════════════════════════════════╝
`
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	fmt.Println(style.Render(splash))
	time.Sleep(500 * time.Millisecond)
}

func runDemoMode(sess *engine.Session) {
	fmt.Println("Creating sample tables...")

	demoQueries := []string{
		`CREATE TABLE users (id INT, name VARCHAR(20), email VARCHAR(30), age INT)`,
		`CREATE TABLE products (id INT, name VARCHAR(20), category VARCHAR(20), price FLOAT, stock INT)`,
		`CREATE TABLE orders (id INT, user_id INT, product_id INT, quantity INT, total FLOAT)`,
		`INSERT INTO users VALUES (1, 'Alice Johnson', 'alice@example.com', 28)`,
		`INSERT INTO users VALUES (2, 'Bob Smith', 'bob@example.com', 35)`,
		`INSERT INTO users VALUES (3, 'Charlie Brown', 'charlie@example.com', 42)`,
		`INSERT INTO products VALUES (1, 'Laptop Pro', 'Electronics', 1299.99, 50)`,
		`INSERT INTO products VALUES (2, 'Wireless Mouse', 'Electronics', 29.99, 200)`,
		`INSERT INTO products VALUES (3, 'Office Chair', 'Furniture', 399.99, 75)`,
		`INSERT INTO orders VALUES (1, 1, 1, 1, 1299.99)`,
		`INSERT INTO orders VALUES (2, 2, 2, 2, 59.98)`,
		`INSERT INTO orders VALUES (3, 3, 3, 1, 399.99)`,
	}

	for _, q := range demoQueries {
		if _, err := sess.Execute(q); err != nil {
			log.Fatalf("demo query failed: %v (%s)", err, q)
		}
	}

	fmt.Println("Demo tables ready: users, products, orders")
}

// importData runs every statement in filename, separated by ';', logging
// failures but continuing so one bad statement doesn't abort the batch.
func importData(sess *engine.Session, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	statements := strings.Split(string(content), ";")
	successCount := 0
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := sess.Execute(stmt); err != nil {
			logging.Warn("import statement failed", "statement", truncateString(stmt, 50), "error", err)
		} else {
			successCount++
		}
	}

	fmt.Printf("Import completed: %d/%d statements successful\n", successCount, len(statements))
	return nil
}

func truncateString(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
