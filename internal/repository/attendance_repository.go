package repository

import (
	"petstore_manager/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository interface {
	// Upsert inserts or overwrites the record for (user, work date).
	// Last write wins; there is no merging of partial rows.
	Upsert(record *models.AttendanceRecord) error
	GetByUserAndDate(userID uint, workDate string) (*models.AttendanceRecord, error)
	GetByID(id uint) (*models.AttendanceRecord, error)
	GetByUser(userID uint, startDate, endDate string) ([]models.AttendanceRecord, error)
	GetByDateRange(startDate, endDate string) ([]models.AttendanceRecord, error)
	Update(record *models.AttendanceRecord) error
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Upsert(record *models.AttendanceRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "work_date"}},
		UpdateAll: true,
	}).Create(record).Error
}

func (r *attendanceRepository) GetByUserAndDate(userID uint, workDate string) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.Where("user_id = ? AND work_date = ?", userID, workDate).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) GetByID(id uint) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) GetByUser(userID uint, startDate, endDate string) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.Where("user_id = ? AND work_date BETWEEN ? AND ?", userID, startDate, endDate).
		Order("work_date desc").Find(&records).Error
	return records, err
}

func (r *attendanceRepository) GetByDateRange(startDate, endDate string) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.Where("work_date BETWEEN ? AND ?", startDate, endDate).
		Order("work_date desc").Find(&records).Error
	return records, err
}

func (r *attendanceRepository) Update(record *models.AttendanceRecord) error {
	return r.db.Save(record).Error
}
