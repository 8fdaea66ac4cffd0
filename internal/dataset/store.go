package dataset

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sales-dashboard/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 10

	csvHeader  = "id,date,category,product,region,city,seller,payment_method,customer_id,unit_price,quantity,gross_amount,discount,amount,status"
	dateLayout = "2006-01-02"
)

// Save writes the dataset as CSV, creating the parent directory if needed.
func Save(path string, sales []models.Sale) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintln(w, csvHeader)
	for _, s := range sales {
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s,%s,%s,%s,%.2f,%d,%.2f,%.2f,%.2f,%s\n",
			s.ID, s.Date.Format(dateLayout), s.Category, s.Product, s.Region,
			s.City, s.Seller, s.PaymentMethod, s.CustomerID,
			s.UnitPrice, s.Quantity, s.GrossAmount, s.Discount, s.Amount, s.Status)
	}
	return w.Flush()
}

// Load streams the CSV into memory, parsing batches concurrently while
// preserving row order. Rows that fail to parse are skipped; a file with
// no valid rows is an error.
func Load(ctx context.Context, path string) ([]models.Sale, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 10*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("empty file")
	}

	var sales []models.Sale
	skipped := 0
	batch := make([]string, 0, batchSize)

	flush := func() error {
		parsed, bad, err := parseBatch(ctx, batch)
		if err != nil {
			return err
		}
		sales = append(sales, parsed...)
		skipped += bad
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		batch = append(batch, scanner.Text())
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan error: %w", err)
	}
	if len(sales) == 0 {
		return nil, fmt.Errorf("no valid records found")
	}
	if skipped > 0 {
		slog.Warn("skipped malformed rows", "file", path, "skipped", skipped)
	}

	return sales, nil
}

// parseBatch parses one batch concurrently into an index-addressed slice so
// the original row order survives.
func parseBatch(ctx context.Context, batch []string) ([]models.Sale, int, error) {
	parsed := make([]models.Sale, len(batch))
	ok := make([]bool, len(batch))

	var wg errgroup.Group
	wg.SetLimit(maxWorkers)

	for i, line := range batch {
		wg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			sale, err := parseSale(strings.Split(line, ","))
			if err != nil {
				return nil // skip malformed rows
			}
			parsed[i] = sale
			ok[i] = true
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, 0, err
	}

	out := make([]models.Sale, 0, len(batch))
	skipped := 0
	for i := range parsed {
		if ok[i] {
			out = append(out, parsed[i])
		} else {
			skipped++
		}
	}
	return out, skipped, nil
}

func parseSale(record []string) (models.Sale, error) {
	if len(record) < 15 {
		return models.Sale{}, fmt.Errorf("insufficient columns")
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(record[1]))
	if err != nil {
		return models.Sale{}, err
	}

	unitPrice, err := strconv.ParseFloat(strings.TrimSpace(record[9]), 64)
	if err != nil {
		return models.Sale{}, err
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[10]))
	if err != nil {
		return models.Sale{}, err
	}
	if quantity < 0 {
		return models.Sale{}, fmt.Errorf("negative quantity")
	}

	gross, err := strconv.ParseFloat(strings.TrimSpace(record[11]), 64)
	if err != nil {
		return models.Sale{}, err
	}

	discount, err := strconv.ParseFloat(strings.TrimSpace(record[12]), 64)
	if err != nil {
		return models.Sale{}, err
	}
	if discount < 0 || discount > 1 {
		return models.Sale{}, fmt.Errorf("discount out of range")
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(record[13]), 64)
	if err != nil {
		return models.Sale{}, err
	}
	if amount < 0 {
		return models.Sale{}, fmt.Errorf("negative amount")
	}

	status, valid := models.ParseStatus(record[14])
	if !valid {
		return models.Sale{}, fmt.Errorf("unknown status %q", record[14])
	}

	return models.Sale{
		ID:            strings.TrimSpace(record[0]),
		Date:          date,
		Category:      strings.TrimSpace(record[2]),
		Product:       strings.TrimSpace(record[3]),
		Region:        strings.TrimSpace(record[4]),
		City:          strings.TrimSpace(record[5]),
		Seller:        strings.TrimSpace(record[6]),
		PaymentMethod: strings.TrimSpace(record[7]),
		CustomerID:    strings.TrimSpace(record[8]),
		UnitPrice:     unitPrice,
		Quantity:      quantity,
		GrossAmount:   gross,
		Discount:      discount,
		Amount:        amount,
		Status:        status,
	}, nil
}

// Options configure the one-time dataset bootstrap.
type Options struct {
	File    string
	Records int
	Seed    int64
}

// LoadOrGenerate loads the configured CSV, generating and persisting a
// fresh dataset first when the file does not exist yet.
func LoadOrGenerate(ctx context.Context, logger *slog.Logger, opts Options) ([]models.Sale, error) {
	if _, err := os.Stat(opts.File); os.IsNotExist(err) {
		logger.Info("dataset missing, generating",
			"file", opts.File,
			"records", opts.Records,
			"seed", opts.Seed,
		)

		sales := Generate(opts.Records, opts.Seed)
		if err := Save(opts.File, sales); err != nil {
			return nil, fmt.Errorf("persist generated dataset: %w", err)
		}
		return sales, nil
	}

	start := time.Now()
	sales, err := Load(ctx, opts.File)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	logger.Info("dataset loaded",
		"file", opts.File,
		"records", len(sales),
		"duration", time.Since(start),
	)
	return sales, nil
}
