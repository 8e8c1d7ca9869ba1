package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	// tzdataが無い実行環境でもIANAタイムゾーンを解決できるようにする
	_ "time/tzdata"

	"natal_backend/internal/api"
	"natal_backend/internal/app/di"
	"natal_backend/internal/feature/chart/adapters"
	"natal_backend/internal/feature/chart/domain"
	"natal_backend/internal/feature/chart/usecase"
	"natal_backend/internal/shared/ratelimiter"
)

// geocodeCallsPerMinute はOpen-Meteo無償枠に収まるジオコーディング呼び出しの上限です。
const geocodeCallsPerMinute = 500

func main() {
	var (
		in     = flag.String("in", "", "input JSONL file (birth details per line, or chart documents with -verify)")
		out    = flag.String("out", "", "output file for generated chart documents (default: stdout)")
		tables = flag.String("tables", "", "YAML file overriding the built-in planet and aspect tables")
		verify = flag.Bool("verify", false, "recompute charts from stored documents and compare hashes")
	)
	flag.Parse()

	if *in == "" {
		log.Fatal("missing -in file")
	}

	batch, err := newBatch(*tables)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var outcome usecase.BatchOutcome
	if *verify {
		outcome = runVerify(ctx, batch, *in)
	} else {
		outcome = runGenerate(ctx, batch, *in, *out)
	}

	if bad := outcome.Failed + outcome.Mismatched; bad > 0 {
		log.Fatalf("%d of %d rows failed", bad, outcome.Processed+bad)
	}
	log.Println("chartgen ok")
}

// newBatch は計算エンジンとジオコーダーからバッチユースケースを組み立てます。
func newBatch(tablesPath string) (*usecase.BatchUsecase, error) {
	t := domain.DefaultTables()
	if tablesPath != "" {
		loaded, err := domain.LoadTablesFile(tablesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load chart tables from %s: %w", tablesPath, err)
		}
		t = loaded
	}

	engine, err := domain.NewEngine(t)
	if err != nil {
		return nil, err
	}

	// バッチ生成はPreviewのみを使うため、永続化と注文確認は注入しない
	charts := usecase.NewChartUsecase(adapters.NewChartCalculator(engine), nil, nil, di.NewPlaceResolver())
	limiter := ratelimiter.NewRateLimiter(geocodeCallsPerMinute, time.Minute)

	return usecase.NewBatchUsecase(charts, limiter), nil
}

func runGenerate(ctx context.Context, batch *usecase.BatchUsecase, in, out string) usecase.BatchOutcome {
	queries, err := readQueries(in)
	if err != nil {
		log.Fatal(err)
	}

	documents, outcome := batch.GenerateAll(ctx, queries)
	if err := writeDocuments(out, documents); err != nil {
		log.Fatal(err)
	}

	log.Printf("generated %d chart documents (%d failed)", outcome.Processed, outcome.Failed)
	return outcome
}

func runVerify(ctx context.Context, batch *usecase.BatchUsecase, in string) usecase.BatchOutcome {
	documents, err := readLines(in)
	if err != nil {
		log.Fatal(err)
	}

	outcome := batch.VerifyAll(ctx, documents)

	log.Printf("verified %d chart documents (%d failed, %d mismatched)",
		outcome.Processed, outcome.Failed, outcome.Mismatched)
	return outcome
}

// readQueries は1行1件のJSONLとして出生情報を読み込みます。
func readQueries(path string) ([]usecase.BirthQuery, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	queries := make([]usecase.BirthQuery, 0, len(lines))
	for i, line := range lines {
		var details api.BirthDetails
		if err := json.Unmarshal(line, &details); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		queries = append(queries, usecase.BirthQuery{
			Name:     details.Name,
			Date:     details.BirthDate,
			Time:     details.BirthTime,
			Timezone: details.Timezone,
			Lat:      details.Lat,
			Lon:      details.Lon,
			Place:    details.Place,
		})
	}
	return queries, nil
}

// readLines は空行を飛ばしながらファイルを行単位で読み込みます。
func readLines(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines [][]byte
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		// scanner.Bytes()のバッファは次のScanで上書きされるためコピーする
		lines = append(lines, append([]byte(nil), line...))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// writeDocuments は生成済み文書を1行1件で書き出します。pathが空なら標準出力に出します。
func writeDocuments(path string, documents [][]byte) error {
	w := io.Writer(os.Stdout)
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	bw := bufio.NewWriter(w)
	for _, doc := range documents {
		bw.Write(doc)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
