// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/nickofolas/reposterminator/internal/conf"
	"github.com/nickofolas/reposterminator/internal/errors"
)

// Interface abstracts the underlying database implementation and defines the
// operations the repost detection core needs.
type Interface interface {
	Open() error
	Close() error

	// Community lifecycle
	SaveCommunity(name string) error
	DeleteCommunity(name string) error
	MarkCommunityIndexed(name string) error
	GetCommunities() ([]Community, error)

	// Submission bookkeeping
	SaveSubmission(submission *Submission) error
	GetSubmission(id string) (Submission, error)
	GetSubmissionIDs() ([]string, error)

	// Fingerprint storage
	SaveFingerprint(fingerprint *Fingerprint) error
	GetFingerprints(community string) ([]Fingerprint, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided configuration.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		// Settings validation rejects this before a store is constructed
		return nil
	}
}

// SaveCommunity inserts a new tracked community with Indexed=false.
// Re-adding an already tracked community is a no-op.
func (ds *DataStore) SaveCommunity(name string) error {
	community := Community{Name: name, Indexed: false}
	err := ds.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&community).Error
	if err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("community", name).
			Build()
	}
	return nil
}

// DeleteCommunity removes a community from tracking.
func (ds *DataStore) DeleteCommunity(name string) error {
	if err := ds.DB.Delete(&Community{}, "name = ?", name).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("community", name).
			Build()
	}
	return nil
}

// MarkCommunityIndexed flips the indexed flag after a completed backfill.
func (ds *DataStore) MarkCommunityIndexed(name string) error {
	err := ds.DB.Model(&Community{}).Where("name = ?", name).
		Update("indexed", true).Error
	if err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("community", name).
			Build()
	}
	return nil
}

// GetCommunities returns all tracked communities.
func (ds *DataStore) GetCommunities() ([]Community, error) {
	var communities []Community
	if err := ds.DB.Find(&communities).Error; err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return communities, nil
}

// SaveSubmission inserts a submission bookkeeping row.
func (ds *DataStore) SaveSubmission(submission *Submission) error {
	if err := ds.checkConnection(); err != nil {
		return err
	}
	if err := ds.DB.Create(submission).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("submission_id", submission.ID).
			Build()
	}
	return nil
}

// GetSubmission retrieves one submission row by id.
func (ds *DataStore) GetSubmission(id string) (Submission, error) {
	var submission Submission
	if err := ds.DB.First(&submission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Submission{}, errors.Newf("submission %s not found", id).
				Component("datastore").
				Category(errors.CategoryNotFound).
				Build()
		}
		return Submission{}, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("submission_id", id).
			Build()
	}
	return submission, nil
}

// GetSubmissionIDs returns the ids of every stored submission. Used to seed
// the in-memory dedup set at startup.
func (ds *DataStore) GetSubmissionIDs() ([]string, error) {
	var ids []string
	if err := ds.DB.Model(&Submission{}).Pluck("id", &ids).Error; err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return ids, nil
}

// SaveFingerprint inserts a new fingerprint row.
func (ds *DataStore) SaveFingerprint(fingerprint *Fingerprint) error {
	if err := ds.checkConnection(); err != nil {
		return err
	}
	if err := ds.DB.Create(fingerprint).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("submission_id", fingerprint.SubmissionID).
			Build()
	}
	return nil
}

// GetFingerprints returns all stored fingerprints for one community.
func (ds *DataStore) GetFingerprints(community string) ([]Fingerprint, error) {
	var fingerprints []Fingerprint
	err := ds.DB.Where("community = ?", community).Find(&fingerprints).Error
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("community", community).
			Build()
	}
	return fingerprints, nil
}

// IsNotFound reports whether err represents a missing row.
func IsNotFound(err error) bool {
	var ee *errors.EnhancedError
	if errors.As(err, &ee) {
		return ee.Category == errors.CategoryNotFound
	}
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)
}

// checkConnection returns an error when the store has not been opened.
func (ds *DataStore) checkConnection() error {
	if ds.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	return nil
}
