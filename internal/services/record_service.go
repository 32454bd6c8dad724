package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jiseti/jiseti-api/internal/dto"
	"github.com/jiseti/jiseti-api/internal/identity"
	"github.com/jiseti/jiseti-api/internal/models"
	"github.com/jiseti/jiseti-api/internal/storage"
	"github.com/jiseti/jiseti-api/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNotRecordOwner = errors.New("not the owner of this record")
	ErrRecordLocked   = errors.New("record can no longer be modified in its current status")
	ErrBadImageType   = errors.New("file type not allowed")
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
}

type RecordService struct {
	db     *gorm.DB
	images storage.ImageStore
}

func NewRecordService(db *gorm.DB, images storage.ImageStore) *RecordService {
	return &RecordService{db: db, images: images}
}

// Create validates and persists a new record owned by the caller. Status
// always starts pending regardless of the request.
func (s *RecordService) Create(auth identity.AuthContext, req *dto.RecordRequest) (*models.Record, error) {
	in, err := validation.ValidateRecord(validation.RecordInput{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return nil, err
	}

	record := models.Record{
		ID:          uuid.New(),
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		Status:      models.StatusPending,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Images:      marshalImages(req.Images),
		UserID:      auth.UserID,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}
	return &record, nil
}

// Get returns one record. Only the owner or an admin may read it.
func (s *RecordService) Get(auth identity.AuthContext, recordID uuid.UUID) (*models.Record, error) {
	record, err := s.find(recordID)
	if err != nil {
		return nil, err
	}
	if record.UserID != auth.UserID && !auth.IsAdmin() {
		return nil, ErrNotRecordOwner
	}
	return record, nil
}

// List returns a page of records: all of them for admins, the caller's
// own otherwise. Out-of-range pages yield an empty item set.
func (s *RecordService) List(auth identity.AuthContext, page, perPage int) ([]models.Record, dto.Pagination, error) {
	query := s.db.Model(&models.Record{})
	if !auth.IsAdmin() {
		query = query.Scopes(identity.OwnedBy(auth.UserID))
	}
	return listRecords(query, page, perPage)
}

// Update replaces the record's content fields. Owner only, and only while
// the record is still pending; validation runs before any write so an
// invalid update never partially applies.
func (s *RecordService) Update(auth identity.AuthContext, recordID uuid.UUID, req *dto.RecordRequest) (*models.Record, error) {
	record, err := s.findOwned(auth, recordID)
	if err != nil {
		return nil, err
	}

	in, err := validation.ValidateRecord(validation.RecordInput{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"type":        in.Type,
		"title":       in.Title,
		"description": in.Description,
		"latitude":    in.Latitude,
		"longitude":   in.Longitude,
	}
	if req.Images != nil {
		updates["images"] = marshalImages(req.Images)
	}

	if err := s.db.Model(record).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	return record, nil
}

// UpdateLocation changes only the geodata, under the same ownership and
// status gate as a full update.
func (s *RecordService) UpdateLocation(auth identity.AuthContext, recordID uuid.UUID, req *dto.UpdateLocationRequest) (*models.Record, error) {
	if req.Latitude == nil {
		return nil, &validation.Error{Field: "latitude", Message: "latitude is required"}
	}
	if req.Longitude == nil {
		return nil, &validation.Error{Field: "longitude", Message: "longitude is required"}
	}
	if err := validation.ValidateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	record, err := s.findOwned(auth, recordID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"latitude":  req.Latitude,
		"longitude": req.Longitude,
	}
	if err := s.db.Model(record).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	return record, nil
}

// AttachImage stores an uploaded image and appends its reference URL to
// the record.
func (s *RecordService) AttachImage(auth identity.AuthContext, recordID uuid.UUID, filename string, file io.Reader) (*models.Record, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return nil, ErrBadImageType
	}

	record, err := s.findOwned(auth, recordID)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Save(recordID, filename, file)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	var images []string
	if len(record.Images) > 0 {
		if err := json.Unmarshal(record.Images, &images); err != nil {
			images = nil
		}
	}
	images = append(images, url)

	if err := s.db.Model(record).Update("images", marshalImages(images)).Error; err != nil {
		return nil, fmt.Errorf("failed to update record images: %w", err)
	}
	return record, nil
}

// Delete removes a record, following the same ownership and status gate
// as edits. Notifications tied to the record go with it.
func (s *RecordService) Delete(auth identity.AuthContext, recordID uuid.UUID) error {
	record, err := s.findOwned(auth, recordID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("record_id = ?", record.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(record).Error
	})
}

func (s *RecordService) find(recordID uuid.UUID) (*models.Record, error) {
	var record models.Record
	if err := s.db.First(&record, "id = ?", recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	return &record, nil
}

// findOwned loads a record and applies the owner-mutation gate: only the
// owner may touch it, and only while it is still pending.
func (s *RecordService) findOwned(auth identity.AuthContext, recordID uuid.UUID) (*models.Record, error) {
	record, err := s.find(recordID)
	if err != nil {
		return nil, err
	}
	if record.UserID != auth.UserID {
		return nil, ErrNotRecordOwner
	}
	if !record.Editable() {
		return nil, ErrRecordLocked
	}
	return record, nil
}

func listRecords(query *gorm.DB, page, perPage int) ([]models.Record, dto.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to count records: %w", err)
	}

	var records []models.Record
	offset := (page - 1) * perPage
	if err := query.Order("created_at DESC").Limit(perPage).Offset(offset).Find(&records).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to list records: %w", err)
	}

	return records, dto.NewPagination(page, perPage, total), nil
}

func clampPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func marshalImages(images []string) datatypes.JSON {
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}
