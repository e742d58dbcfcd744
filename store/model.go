package store

import (
	"time"
)

const (
	KindInitialize = "initialize"
	KindDeposit    = "deposit"
	KindWithdraw   = "withdraw"
	KindSwap       = "swap"
)

const (
	StatusConfirmed   = "confirmed"
	StatusUnconfirmed = "unconfirmed"
	StatusFailed      = "failed"
)

// Operation is one executed flow. Deposits and withdrawals store the x leg in TokenIn/AmountIn
// and the y leg in TokenOut/AmountOut.
type Operation struct {
	Id        uint64    `gorm:"primaryKey;autoIncrement;type:bigint(20);not null"`
	Kind      string    `gorm:"type:varchar(16);not null;index"`
	Pool      string    `gorm:"type:varchar(48);not null;index"`
	User      string    `gorm:"type:varchar(48);not null"`
	Signature string    `gorm:"type:varchar(120);not null"`
	TokenIn   string    `gorm:"type:varchar(48);not null"`
	AmountIn  uint64    `gorm:"type:bigint(20) unsigned;not null"`
	TokenOut  string    `gorm:"type:varchar(48);not null"`
	AmountOut uint64    `gorm:"type:bigint(20) unsigned;not null"`
	LPAmount  uint64    `gorm:"type:bigint(20) unsigned;not null"`
	Status    string    `gorm:"type:varchar(16);not null"`
	Error     string    `gorm:"type:varchar(512);not null"`
	CreatedAt time.Time `gorm:"not null"`
}
