package create_enquiry

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MillService/internal/domain"
	createEnquiry "github.com/m04kA/SMC-MillService/internal/usecase/create_enquiry"
)

// formImages имя поля multipart с файлами
const formImages = "images"

// CreateEnquiryRequest HTTP request model (JSON или поля multipart формы)
type CreateEnquiryRequest struct {
	WorkType        string           `json:"workType"`
	LogItems        []LogItemRequest `json:"logItems"`
	CubicFeet       *decimal.Decimal `json:"cubicFeet,omitempty"`
	RequestedDate   string           `json:"requestedDate"` // "2026-11-02"
	RequestedTime   string           `json:"requestedTime"` // "09:00"
	DurationMinutes int              `json:"durationMinutes,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// LogItemRequest позиция заявки; размеры в дюймах
type LogItemRequest struct {
	WoodType     string           `json:"woodType"`
	NumberOfLogs int              `json:"numberOfLogs"`
	Thickness    *decimal.Decimal `json:"thickness,omitempty"`
	Width        *decimal.Decimal `json:"width,omitempty"`
	Length       *decimal.Decimal `json:"length,omitempty"`
	CubicFeet    *decimal.Decimal `json:"cubicFeet,omitempty"`
}

// FromMultipartForm собирает запрос из полей формы и читает приложенные изображения
func FromMultipartForm(form *multipart.Form) (*CreateEnquiryRequest, []domain.Image, error) {
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	req := &CreateEnquiryRequest{
		WorkType:      value("workType"),
		RequestedDate: value("requestedDate"),
		RequestedTime: value("requestedTime"),
	}

	if raw := value("logItems"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.LogItems); err != nil {
			return nil, nil, fmt.Errorf("%w: logItems must be a JSON array: %v", domain.ErrValidation, err)
		}
	}

	if raw := value("cubicFeet"); raw != "" {
		cf, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: cubicFeet must be a number", domain.ErrValidation)
		}
		req.CubicFeet = &cf
	}

	if raw := value("durationMinutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: durationMinutes must be a number", domain.ErrValidation)
		}
		req.DurationMinutes = minutes
	}

	if notes, ok := form.Value["notes"]; ok && len(notes) > 0 {
		req.Notes = &notes[0]
	}

	images := make([]domain.Image, 0, len(form.File[formImages]))
	for _, fh := range form.File[formImages] {
		img, err := readImage(fh)
		if err != nil {
			return nil, nil, err
		}
		images = append(images, img)
	}

	return req, images, nil
}

func readImage(fh *multipart.FileHeader) (domain.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.Image{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.Image{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return domain.Image{
		ImageMeta: domain.ImageMeta{
			FileName:    fh.Filename,
			ContentType: contentType,
			SizeBytes:   int64(len(data)),
		},
		Data: data,
	}, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateEnquiryRequest) ToUseCaseRequest(customerID int64, images []domain.Image) *createEnquiry.Request {
	items := make([]createEnquiry.LogItem, len(r.LogItems))
	for i, li := range r.LogItems {
		items[i] = createEnquiry.LogItem{
			WoodType:     li.WoodType,
			NumberOfLogs: li.NumberOfLogs,
			Thickness:    li.Thickness,
			Width:        li.Width,
			Length:       li.Length,
			CubicFeet:    li.CubicFeet,
		}
	}

	return &createEnquiry.Request{
		CustomerID:      customerID,
		WorkType:        r.WorkType,
		LogItems:        items,
		CubicFeet:       r.CubicFeet,
		RequestedDate:   r.RequestedDate,
		RequestedTime:   r.RequestedTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
		Images:          images,
	}
}
