package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalLines       int
	MalformedLines   int
	TotalErrors      int
	TotalWarnings    int
	WebhooksReceived int
	WebhooksRejected int
	WebhooksStored   int
	BalancesStored   int
	WalletsSkipped   int
	Requests         map[string]int
	WalletUpdates    map[string]int
	ErrorPatterns    map[string]int
}

// logEntry is one line written by the JSON core of the service logger
type logEntry struct {
	Level   string `json:"level"`
	Time    string `json:"ts"`
	Message string `json:"msg"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Status  int    `json:"status"`
}

func main() {
	logFile := flag.String("file", "webhook.log", "path to the JSON log file")
	top := flag.Int("top", 5, "number of entries in the ranked sections")
	flag.Parse()

	stats := &LogStats{
		Requests:      make(map[string]int),
		WalletUpdates: make(map[string]int),
		ErrorPatterns: make(map[string]int),
	}

	if err := analyzeLog(*logFile, stats); err != nil {
		fmt.Printf("Error reading log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}

	printReport(*logFile, stats, *top)
}

func analyzeLog(logFile string, stats *LogStats) error {
	file, err := os.Open(logFile)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	// pretty-printed payloads at debug level can exceed the default token size
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.TotalLines++

		var entry logEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			stats.MalformedLines++
			continue
		}
		analyzeEntry(&entry, stats)
	}
	return scanner.Err()
}

func analyzeEntry(entry *logEntry, stats *LogStats) {
	switch entry.Level {
	case "error", "dpanic", "panic", "fatal":
		stats.TotalErrors++
		extractErrorPattern(entry.Message, stats)
	case "warn":
		stats.TotalWarnings++
	}

	msg := entry.Message
	switch {
	case msg == "request":
		stats.Requests[fmt.Sprintf("%s %s %d", entry.Method, entry.Path, entry.Status)]++
	case msg == "Webhook received":
		stats.WebhooksReceived++
	case strings.HasPrefix(msg, "Webhook rejected"):
		stats.WebhooksRejected++
	case strings.HasPrefix(msg, "Webhook stored"):
		stats.WebhooksStored++
	case strings.HasPrefix(msg, "Wallet balance stored for "):
		stats.BalancesStored++
		stats.WalletUpdates[walletFromMessage(msg)]++
	case strings.HasPrefix(msg, "Wallet ") && strings.Contains(msg, " skipped"):
		stats.WalletsSkipped++
	}
}

// walletFromMessage pulls the wallet id out of "... (ID: <id>)"
func walletFromMessage(msg string) string {
	start := strings.LastIndex(msg, "(ID: ")
	if start < 0 {
		return "unknown"
	}
	id := strings.TrimSuffix(msg[start+len("(ID: "):], ")")
	if id == "" {
		return "unknown"
	}
	return id
}

func extractErrorPattern(msg string, stats *LogStats) {
	// keep the part before the wrapped cause so similar failures group together
	if i := strings.Index(msg, ":"); i > 0 {
		msg = msg[:i]
	}
	stats.ErrorPatterns[strings.TrimSpace(msg)]++
}

func printReport(logFile string, stats *LogStats, top int) {
	fmt.Println("\n=== Webhook Log Analysis Report ===")
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println("Log file: ", logFile)
	fmt.Printf("Lines read: %d (malformed: %d)\n", stats.TotalLines, stats.MalformedLines)

	fmt.Println("\n1. Webhook Statistics:")
	fmt.Printf("   Received: %d\n", stats.WebhooksReceived)
	fmt.Printf("   Rejected: %d\n", stats.WebhooksRejected)
	fmt.Printf("   Stored: %d\n", stats.WebhooksStored)

	fmt.Println("\n2. Wallet Balance Refreshes:")
	fmt.Printf("   Balances Stored: %d\n", stats.BalancesStored)
	fmt.Printf("   Wallets Skipped: %d\n", stats.WalletsSkipped)
	printTop(stats.WalletUpdates, top, "updates")

	fmt.Println("\n3. Error Statistics:")
	fmt.Printf("   Total Errors: %d\n", stats.TotalErrors)
	fmt.Printf("   Total Warnings: %d\n", stats.TotalWarnings)

	fmt.Println("\n4. Most Frequent Requests:")
	printTop(stats.Requests, top, "requests")

	fmt.Println("\n5. Most Common Errors:")
	printTop(stats.ErrorPatterns, top, "occurrences")
}

func printTop(counts map[string]int, limit int, unit string) {
	type entryCount struct {
		key   string
		count int
	}

	var list []entryCount
	for key, count := range counts {
		list = append(list, entryCount{key, count})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].count == list[j].count {
			return list[i].key < list[j].key
		}
		return list[i].count > list[j].count
	})

	for i, e := range list {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d %s\n", e.key, e.count, unit)
	}
}
