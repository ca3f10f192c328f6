package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	devicesTable = "devices"

	uniqueViolationCode = "23505"
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	deviceColumns = []string{
		"id", "nickname", "model", "brand", "device_type", "status",
		"adopted_date", "purchase_price", "current_value", "source", "notes",
		"thumbnail", "hover_photo", "main_photo",
		"details", "gallery", "paired_devices", "repairs",
		"created_at", "updated_at",
	}
)

type (
	// PoolOps is the slice of pgxpool.Pool the repository uses.
	PoolOps interface {
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Ping(ctx context.Context) error
	}

	// DevicesRepository stores devices in PostgreSQL. Nested collections and
	// the type-specific attributes are kept as JSONB documents.
	DevicesRepository struct {
		pool    PoolOps
		scanner Scanner
		logger  logger.Logger
	}

	deviceRow struct {
		ID            string    `db:"id"`
		Nickname      string    `db:"nickname"`
		Model         string    `db:"model"`
		Brand         string    `db:"brand"`
		DeviceType    string    `db:"device_type"`
		Status        string    `db:"status"`
		AdoptedDate   time.Time `db:"adopted_date"`
		PurchasePrice *float64  `db:"purchase_price"`
		CurrentValue  *float64  `db:"current_value"`
		Source        string    `db:"source"`
		Notes         string    `db:"notes"`
		Thumbnail     string    `db:"thumbnail"`
		HoverPhoto    string    `db:"hover_photo"`
		MainPhoto     string    `db:"main_photo"`
		Details       []byte    `db:"details"`
		Gallery       []byte    `db:"gallery"`
		PairedDevices []byte    `db:"paired_devices"`
		Repairs       []byte    `db:"repairs"`
		CreatedAt     time.Time `db:"created_at"`
		UpdatedAt     time.Time `db:"updated_at"`
	}

	detailsColumn struct {
		CPU          string   `json:"cpu,omitempty"`
		RAM          string   `json:"ram,omitempty"`
		Storage      string   `json:"storage,omitempty"`
		OS           string   `json:"os,omitempty"`
		SensorType   string   `json:"sensor_type,omitempty"`
		LensMount    string   `json:"lens_mount,omitempty"`
		Megapixels   *float64 `json:"megapixels,omitempty"`
		FilmType     string   `json:"film_type,omitempty"`
		BatteryLife  string   `json:"battery_life,omitempty"`
		Connectivity string   `json:"connectivity,omitempty"`
	}

	documentColumns struct {
		details       []byte
		gallery       []byte
		pairedDevices []byte
		repairs       []byte
	}
)

func NewDevicesRepository(pool PoolOps, scanner Scanner, log logger.Logger) *DevicesRepository {
	return &DevicesRepository{
		pool:    pool,
		scanner: scanner,
		logger:  log,
	}
}

func (r *DevicesRepository) Create(ctx context.Context, device *model.Device) error {
	docs, err := encodeDocuments(device.DeviceAttributes)
	if err != nil {
		return err
	}

	query, args, err := psql.Insert(devicesTable).
		Columns(deviceColumns...).
		Values(
			device.ID.String(),
			device.Nickname,
			device.Model,
			device.Brand,
			device.Type.String(),
			device.Status.String(),
			device.AdoptedDate.Time(),
			device.PurchasePrice,
			device.CurrentValue,
			device.Source,
			device.Notes,
			device.Thumbnail,
			device.HoverPhoto,
			device.MainPhoto,
			docs.details,
			docs.gallery,
			docs.pairedDevices,
			docs.repairs,
			device.CreatedAt,
			device.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		if isDuplicateKeyError(err) {
			return model.ErrDuplicateDevice
		}

		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return nil
}

func (r *DevicesRepository) FetchByID(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	query, args, err := psql.Select(deviceColumns...).
		From(devicesTable).
		Where(sq.Eq{"id": id.String()}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var row deviceRow
	if err := r.scanner.ScanOne(&row, rows); err != nil {
		if errors.Is(err, model.ErrDeviceNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	device, err := row.toDevice()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return device, nil
}

// List returns every device, most recently adopted first.
func (r *DevicesRepository) List(ctx context.Context) ([]model.Device, error) {
	query, args, err := psql.Select(deviceColumns...).
		From(devicesTable).
		OrderBy("adopted_date DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var deviceRows []deviceRow
	if err := r.scanner.ScanAll(&deviceRows, rows); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	devices := make([]model.Device, 0, len(deviceRows))

	for index := range deviceRows {
		device, err := deviceRows[index].toDevice()
		if err != nil {
			r.logger.Warn().Err(err).Str("device_id", deviceRows[index].ID).Msg("skipping unreadable device row")

			continue
		}

		devices = append(devices, *device)
	}

	return devices, nil
}

func (r *DevicesRepository) Update(ctx context.Context, device *model.Device) error {
	docs, err := encodeDocuments(device.DeviceAttributes)
	if err != nil {
		return err
	}

	query, args, err := psql.Update(devicesTable).
		Set("nickname", device.Nickname).
		Set("model", device.Model).
		Set("brand", device.Brand).
		Set("device_type", device.Type.String()).
		Set("status", device.Status.String()).
		Set("adopted_date", device.AdoptedDate.Time()).
		Set("purchase_price", device.PurchasePrice).
		Set("current_value", device.CurrentValue).
		Set("source", device.Source).
		Set("notes", device.Notes).
		Set("thumbnail", device.Thumbnail).
		Set("hover_photo", device.HoverPhoto).
		Set("main_photo", device.MainPhoto).
		Set("details", docs.details).
		Set("gallery", docs.gallery).
		Set("paired_devices", docs.pairedDevices).
		Set("repairs", docs.repairs).
		Set("updated_at", device.UpdatedAt).
		Where(sq.Eq{"id": device.ID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	return r.execAffectingOne(ctx, query, args)
}

func (r *DevicesRepository) Delete(ctx context.Context, id model.DeviceID) error {
	query, args, err := psql.Delete(devicesTable).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	return r.execAffectingOne(ctx, query, args)
}

func (r *DevicesRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseConnection, err)
	}

	return nil
}

func (r *DevicesRepository) execAffectingOne(ctx context.Context, query string, args []any) error {
	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrDeviceNotFound
	}

	return nil
}

func encodeDocuments(attrs model.DeviceAttributes) (documentColumns, error) {
	fields := model.FieldsOf(attrs.TypeDetails())

	details, err := json.Marshal(detailsColumn{
		CPU:          fields.CPU,
		RAM:          fields.RAM,
		Storage:      fields.Storage,
		OS:           fields.OS,
		SensorType:   fields.SensorType,
		LensMount:    fields.LensMount,
		Megapixels:   fields.Megapixels,
		FilmType:     fields.FilmType,
		BatteryLife:  fields.BatteryLife,
		Connectivity: fields.Connectivity,
	})
	if err != nil {
		return documentColumns{}, fmt.Errorf("encoding details: %w", err)
	}

	gallery, err := marshalList(attrs.Gallery)
	if err != nil {
		return documentColumns{}, fmt.Errorf("encoding gallery: %w", err)
	}

	paired, err := marshalList(attrs.PairedDevices)
	if err != nil {
		return documentColumns{}, fmt.Errorf("encoding paired devices: %w", err)
	}

	repairs, err := marshalList(attrs.Repairs)
	if err != nil {
		return documentColumns{}, fmt.Errorf("encoding repairs: %w", err)
	}

	return documentColumns{
		details:       details,
		gallery:       gallery,
		pairedDevices: paired,
		repairs:       repairs,
	}, nil
}

func marshalList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}

	return json.Marshal(items)
}

func unmarshalList[T any](data []byte) ([]T, error) {
	items := []T{}
	if len(data) == 0 {
		return items, nil
	}

	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

func (row deviceRow) toDevice() (*model.Device, error) {
	var details detailsColumn
	if len(row.Details) > 0 {
		if err := json.Unmarshal(row.Details, &details); err != nil {
			return nil, fmt.Errorf("decoding details of %s: %w", row.ID, err)
		}
	}

	gallery, err := unmarshalList[model.GalleryPhoto](row.Gallery)
	if err != nil {
		return nil, fmt.Errorf("decoding gallery of %s: %w", row.ID, err)
	}

	paired, err := unmarshalList[model.PairedDevice](row.PairedDevices)
	if err != nil {
		return nil, fmt.Errorf("decoding paired devices of %s: %w", row.ID, err)
	}

	repairs, err := unmarshalList[model.RepairEvent](row.Repairs)
	if err != nil {
		return nil, fmt.Errorf("decoding repairs of %s: %w", row.ID, err)
	}

	deviceType := model.DeviceType(row.DeviceType)

	return &model.Device{
		ID: model.DeviceID(row.ID),
		DeviceAttributes: model.DeviceAttributes{
			Nickname:      row.Nickname,
			Model:         row.Model,
			Brand:         row.Brand,
			Type:          deviceType,
			Status:        model.Status(row.Status),
			AdoptedDate:   model.DateOf(row.AdoptedDate),
			PurchasePrice: row.PurchasePrice,
			CurrentValue:  row.CurrentValue,
			Source:        row.Source,
			Notes:         row.Notes,
			Thumbnail:     row.Thumbnail,
			HoverPhoto:    row.HoverPhoto,
			MainPhoto:     row.MainPhoto,
			Gallery:       gallery,
			PairedDevices: paired,
			Repairs:       repairs,
			Details: model.NewDetails(deviceType, model.DetailFields{
				CPU:          details.CPU,
				RAM:          details.RAM,
				Storage:      details.Storage,
				OS:           details.OS,
				SensorType:   details.SensorType,
				LensMount:    details.LensMount,
				Megapixels:   details.Megapixels,
				FilmType:     details.FilmType,
				BatteryLife:  details.BatteryLife,
				Connectivity: details.Connectivity,
			}),
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}

	message := err.Error()

	return strings.Contains(message, "duplicate key") || strings.Contains(message, "unique constraint")
}
