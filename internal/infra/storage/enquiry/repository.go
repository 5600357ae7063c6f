package enquiry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MillService/pkg/psqlbuilder"
)

const (
	tableEnquiries = "enquiries"
	tableImages    = "enquiry_images"
	tableEvents    = "enquiry_status_events"
)

var enquiryColumns = []string{
	"id",
	"customer_id",
	"work_type",
	"log_items",
	"total_cubic_feet",
	"requested_date",
	"requested_time",
	"slot_minutes",
	"status",
	"accepted_date",
	"accepted_start_time",
	"accepted_end_time",
	"proposed_date",
	"proposed_start_time",
	"proposed_end_time",
	"scheduled_date",
	"scheduled_start_time",
	"scheduled_end_time",
	"admin_notes",
	"notes",
	"estimated_cost",
	"created_at",
	"updated_at",
}

var eventColumns = []string{
	"id",
	"enquiry_id",
	"from_status",
	"to_status",
	"action",
	"actor_role",
	"actor_id",
	"reason",
	"created_at",
}

// Repository репозиторий заявок, их вложений и истории статусов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую заявку вместе с изображениями.
// Метаданные сохранённых изображений записываются в e.Images.
func (r *Repository) Create(ctx context.Context, e *domain.Enquiry, images []domain.Image) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	logItems, err := encodeLogItems(e.LogItems)
	if err != nil {
		return err
	}
	cols := toStateColumns(e.State)

	query, args, err := psqlbuilder.Insert(tableEnquiries).
		Columns(enquiryColumns[:21]...).
		Values(
			e.ID,
			e.CustomerID,
			e.WorkType,
			logItems,
			e.TotalCubicFeet,
			e.RequestedDate.Format(domain.DateFormat),
			e.RequestedTime,
			e.SlotMinutes,
			e.Status(),
			nullDate(cols.Accepted.Date), cols.Accepted.Start, cols.Accepted.End,
			nullDate(cols.Proposed.Date), cols.Proposed.Start, cols.Proposed.End,
			nullDate(cols.Scheduled.Date), cols.Scheduled.Start, cols.Scheduled.End,
			e.AdminNotes,
			e.Notes,
			nullDecimal(e.EstimatedCost),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	e.Images = make([]domain.ImageMeta, 0, len(images))
	for _, img := range images {
		meta, err := r.insertImage(ctx, e.ID, img)
		if err != nil {
			return err
		}
		e.Images = append(e.Images, meta)
	}

	return nil
}

// GetByID получает заявку по ID.
// Внутри пишущей транзакции строка блокируется (FOR UPDATE) до её завершения.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(enquiryColumns...).
		From(tableEnquiries).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	e, err := scanEnquiry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEnquiryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - %v", ErrScanRow, err)
	}

	images, err := r.listImages(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Images = images

	return e, nil
}

// List получает заявки по фильтру, новые первыми.
// Фильтр по дате совпадает и с запрошенной датой, и с датой текущего слота.
func (r *Repository) List(ctx context.Context, filter domain.EnquiriesFilter) ([]*domain.Enquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(enquiryColumns...).
		From(tableEnquiries).
		OrderBy("created_at DESC")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Date != nil {
		day := filter.Date.Format(domain.DateFormat)
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"requested_date": day},
			squirrel.Eq{"accepted_date": day},
			squirrel.Eq{"proposed_date": day},
			squirrel.Eq{"scheduled_date": day},
		})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	enquiries := make([]*domain.Enquiry, 0)
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - %v", ErrScanRow, err)
		}
		enquiries = append(enquiries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return enquiries, nil
}

// Update сохраняет статус, время текущего состояния и поля персонала
func (r *Repository) Update(ctx context.Context, e *domain.Enquiry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	cols := toStateColumns(e.State)

	query, args, err := psqlbuilder.Update(tableEnquiries).
		Set("status", e.Status()).
		Set("accepted_date", nullDate(cols.Accepted.Date)).
		Set("accepted_start_time", cols.Accepted.Start).
		Set("accepted_end_time", cols.Accepted.End).
		Set("proposed_date", nullDate(cols.Proposed.Date)).
		Set("proposed_start_time", cols.Proposed.Start).
		Set("proposed_end_time", cols.Proposed.End).
		Set("scheduled_date", nullDate(cols.Scheduled.Date)).
		Set("scheduled_start_time", cols.Scheduled.Start).
		Set("scheduled_end_time", cols.Scheduled.End).
		Set("admin_notes", e.AdminNotes).
		Set("estimated_cost", nullDecimal(e.EstimatedCost)).
		Set("updated_at", e.UpdatedAt).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEnquiryNotFound
	}

	return nil
}

// AddEvent записывает переход статуса в историю
func (r *Repository) AddEvent(ctx context.Context, ev *domain.StatusEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var from interface{}
	if ev.From != "" {
		from = ev.From
	}

	query, args, err := psqlbuilder.Insert(tableEvents).
		Columns("enquiry_id", "from_status", "to_status", "action", "actor_role", "actor_id", "reason").
		Values(ev.EnquiryID, from, ev.To, ev.Action, ev.Actor.Role, ev.Actor.ID, ev.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddEvent - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&ev.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: AddEvent - execute insert: %v", ErrExecQuery, err)
	}
	ev.CreatedAt = createdAt.Time

	return nil
}

// ListEvents получает историю статусов заявки в хронологическом порядке
func (r *Repository) ListEvents(ctx context.Context, enquiryID string) ([]*domain.StatusEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From(tableEvents).
		Where(squirrel.Eq{"enquiry_id": enquiryID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListEvents - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEvents - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.StatusEvent, 0)
	for rows.Next() {
		var ev domain.StatusEvent
		var from, reason sql.NullString
		var createdAt sql.NullTime

		err := rows.Scan(
			&ev.ID,
			&ev.EnquiryID,
			&from,
			&ev.To,
			&ev.Action,
			&ev.Actor.Role,
			&ev.Actor.ID,
			&reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListEvents - scan row: %v", ErrScanRow, err)
		}
		ev.From = domain.Status(from.String)
		ev.Reason = reason.String
		ev.CreatedAt = createdAt.Time
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEvents - rows iteration: %v", ErrScanRow, err)
	}

	return events, nil
}

// GetImage получает вложение заявки вместе с данными
func (r *Repository) GetImage(ctx context.Context, enquiryID string, imageID int64) (*domain.Image, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "file_name", "content_type", "size_bytes", "data").
		From(tableImages).
		Where(squirrel.Eq{"id": imageID, "enquiry_id": enquiryID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetImage - build select query: %v", ErrBuildQuery, err)
	}

	var img domain.Image
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&img.ID, &img.FileName, &img.ContentType, &img.SizeBytes, &img.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEnquiryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetImage - scan row: %v", ErrScanRow, err)
	}

	return &img, nil
}

func (r *Repository) insertImage(ctx context.Context, enquiryID string, img domain.Image) (domain.ImageMeta, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableImages).
		Columns("enquiry_id", "file_name", "content_type", "size_bytes", "data").
		Values(enquiryID, img.FileName, img.ContentType, int64(len(img.Data)), img.Data).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.ImageMeta{}, fmt.Errorf("%w: insertImage - build insert query: %v", ErrBuildQuery, err)
	}

	meta := img.ImageMeta
	meta.SizeBytes = int64(len(img.Data))
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&meta.ID); err != nil {
		return domain.ImageMeta{}, fmt.Errorf("%w: insertImage - execute insert: %v", ErrExecQuery, err)
	}

	return meta, nil
}

func (r *Repository) listImages(ctx context.Context, enquiryID string) ([]domain.ImageMeta, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "file_name", "content_type", "size_bytes").
		From(tableImages).
		Where(squirrel.Eq{"enquiry_id": enquiryID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listImages - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listImages - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	images := make([]domain.ImageMeta, 0)
	for rows.Next() {
		var meta domain.ImageMeta
		if err := rows.Scan(&meta.ID, &meta.FileName, &meta.ContentType, &meta.SizeBytes); err != nil {
			return nil, fmt.Errorf("%w: listImages - scan row: %v", ErrScanRow, err)
		}
		images = append(images, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listImages - rows iteration: %v", ErrScanRow, err)
	}

	return images, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEnquiry(row rowScanner) (*domain.Enquiry, error) {
	var (
		e             domain.Enquiry
		logItems      []byte
		status        domain.Status
		cols          stateColumns
		adminNotes    sql.NullString
		notes         sql.NullString
		estimatedCost decimal.NullDecimal
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
		requestedDate time.Time
	)

	err := row.Scan(
		&e.ID,
		&e.CustomerID,
		&e.WorkType,
		&logItems,
		&e.TotalCubicFeet,
		&requestedDate,
		&e.RequestedTime,
		&e.SlotMinutes,
		&status,
		&cols.Accepted.Date, &cols.Accepted.Start, &cols.Accepted.End,
		&cols.Proposed.Date, &cols.Proposed.Start, &cols.Proposed.End,
		&cols.Scheduled.Date, &cols.Scheduled.Start, &cols.Scheduled.End,
		&adminNotes,
		&notes,
		&estimatedCost,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.LogItems, err = decodeLogItems(logItems)
	if err != nil {
		return nil, err
	}
	e.State, err = cols.toState(status)
	if err != nil {
		return nil, err
	}

	e.RequestedDate = requestedDate
	e.AdminNotes = stringPtr(adminNotes)
	e.Notes = stringPtr(notes)
	e.EstimatedCost = decimalPtr(estimatedCost)
	e.CreatedAt = timeOrZero(createdAt)
	e.UpdatedAt = timeOrZero(updatedAt)
	e.Images = []domain.ImageMeta{}

	return &e, nil
}
