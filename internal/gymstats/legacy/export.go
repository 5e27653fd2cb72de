package legacy

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ExportRow is one set in the columnar export.
type ExportRow struct {
	Date            string  `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	WorkoutID       int64   `parquet:"name=workout_id, type=INT64"`
	Exercise        string  `parquet:"name=exercise, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	SetNumber       int32   `parquet:"name=set_number, type=INT32"`
	Weight          float64 `parquet:"name=weight, type=DOUBLE"`
	Reps            int32   `parquet:"name=reps, type=INT32"`
	Difficulty      string  `parquet:"name=difficulty, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CreatedAt       string  `parquet:"name=created_at, type=BYTE_ARRAY, convertedtype=UTF8"`
	DurationSeconds *int32  `parquet:"name=duration_s, type=INT32, repetitiontype=OPTIONAL"`
	DurationCleaned *int32  `parquet:"name=duration_cleaned_s, type=INT32, repetitiontype=OPTIONAL"`
	SupersetID      *string `parquet:"name=superset_id, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Volume          float64 `parquet:"name=volume, type=DOUBLE"`
}

func marshalParquet(rows []ExportRow) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(ExportRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

func int32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	i := int32(*v)
	return &i
}

// ExportSets writes every set of the owner as a snappy compressed parquet file.
func ExportSets(ctx context.Context, q querier, ownerID int, out io.Writer) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "legacy.export.sets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := q.Query(ctx,
		`SELECT w.date::text, w.id, e.name, s.set_number, s.weight, s.reps, s.difficulty, s.created_at,
				s.duration_seconds, s.duration_cleaned, s.superset_id::text
			FROM workout_set s
			JOIN workout w ON w.id = s.workout_id
			JOIN exercise e ON e.id = s.exercise_id
			WHERE w.user_id = $1
			ORDER BY w.date, s.created_at, s.id`,
		ownerID,
	)
	if err != nil {
		return 0, fmt.Errorf("query sets: %w", err)
	}
	exportRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ExportRow, error) {
		var (
			r          ExportRow
			setNumber  int
			reps       int
			createdAt  time.Time
			duration   *int
			cleaned    *int
			supersetID *string
		)
		if err := row.Scan(
			&r.Date, &r.WorkoutID, &r.Exercise, &setNumber, &r.Weight, &reps, &r.Difficulty, &createdAt,
			&duration, &cleaned, &supersetID,
		); err != nil {
			return r, err
		}
		r.SetNumber = int32(setNumber)
		r.Reps = int32(reps)
		r.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		r.DurationSeconds = int32Ptr(duration)
		r.DurationCleaned = int32Ptr(cleaned)
		r.SupersetID = supersetID
		r.Volume = r.Weight * float64(reps)
		return r, nil
	})
	if err != nil {
		return 0, fmt.Errorf("read sets: %w", err)
	}

	data, err := marshalParquet(exportRows)
	if err != nil {
		return 0, fmt.Errorf("marshal parquet: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}

	log.Debugf("exported %d sets of owner %d (%d bytes)", len(exportRows), ownerID, len(data))
	return len(exportRows), nil
}
