// Command normalize runs raw generation output through the decoding pipeline and
// prints the normalized result as JSON. It reads the file named by -in, or stdin.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"studybuddy/internal/config"
	"studybuddy/internal/logger"
	"studybuddy/internal/pipeline"
)

func main() {
	in := flag.String("in", "", "file holding the raw output (default stdin)")
	kind := flag.String("kind", "questions", "what the output describes: questions or feedback")
	subject := flag.String("subject", "", "subject used for default topics")
	level := flag.String("log-level", "error", "log level")
	flag.Parse()

	if err := logger.Initialize(config.LoggerConfig{Level: *level}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	l := logger.Get()
	defer logger.Sync()

	raw, err := readInput(*in)
	if err != nil {
		l.Fatal("Failed to read input", zap.Error(err))
	}

	p := pipeline.New(logger.Named("pipeline"))

	var result interface{}
	switch *kind {
	case "questions":
		result, err = p.QuestionSet(string(raw), *subject)
	case "feedback":
		result, err = p.FeedbackReport(string(raw))
	default:
		l.Fatal("Unknown kind", zap.String("kind", *kind))
	}
	if err != nil {
		l.Fatal("Failed to normalize output", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		l.Fatal("Failed to write result", zap.Error(err))
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
