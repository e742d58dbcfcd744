package store

import (
	"fmt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Dao struct {
	db *gorm.DB
}

func DSN(url, scheme, user, passwd string) string {
	return user + ":" + passwd + "@tcp(" + url + ")/" + scheme + "?charset=utf8mb4&parseTime=True"
}

func NewDao(url, scheme, user, passwd string) (*Dao, error) {
	Logger := logger.Default
	Logger = Logger.LogMode(logger.Warn)
	db, err := gorm.Open(mysql.Open(DSN(url, scheme, user, passwd)), &gorm.Config{Logger: Logger})
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	err = db.AutoMigrate(&Operation{})
	if err != nil {
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Dao{db: db}, nil
}

func (dao *Dao) SaveOperation(op *Operation) error {
	return dao.db.Create(op).Error
}

// SelectOperations returns the latest operations on pool, newest first.
func (dao *Dao) SelectOperations(pool string, limit int) ([]*Operation, error) {
	operations := make([]*Operation, 0)
	res := dao.db.Where("pool = ?", pool).Order("id desc").Limit(limit).Find(&operations)
	return operations, res.Error
}
