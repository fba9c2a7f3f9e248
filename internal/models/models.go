package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	AccountTypeCard    = "card"
	AccountTypeCash    = "cash"
	AccountTypeDeposit = "deposit"
	AccountTypeCrypto  = "crypto"
	AccountTypeBroker  = "broker"
)

const (
	TxIncome  = "income"
	TxExpense = "expense"
)

const (
	FrequencyOnce    = "once"
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// RateBucket is a principal sub-balance tagged with the interest rate and the
// time it started accruing. Buckets are embedded in the owning Account and have
// no identity of their own.
type RateBucket struct {
	Rate      decimal.Decimal `json:"rate"`
	Principal decimal.Decimal `json:"principal"`
	StartDate time.Time       `json:"startDate"`
	LastSync  *time.Time      `json:"lastSync,omitempty"`
}

type RateBuckets []RateBucket

type Account struct {
	ID             string           `gorm:"primaryKey;size:36" json:"id"`
	Name           string           `gorm:"size:100;not null" json:"name"`
	Type           string           `gorm:"size:20;index;not null" json:"type"`
	Balance        decimal.Decimal  `gorm:"type:numeric;not null" json:"balance"`
	Currency       string           `gorm:"size:3;not null" json:"currency"`
	Icon           string           `gorm:"size:50" json:"icon"`
	Color          string           `gorm:"size:20" json:"color"`
	IsActive       bool             `gorm:"index;not null;default:true" json:"isActive"`
	InterestRate   *decimal.Decimal `gorm:"type:numeric" json:"interestRate,omitempty"`
	RateBuckets    RateBuckets      `gorm:"serializer:json" json:"rateBuckets,omitempty"`
	ExternalSource string           `gorm:"size:50" json:"externalSource,omitempty"`
	ExternalID     string           `gorm:"size:100;index" json:"externalId,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

type Transaction struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Description string          `gorm:"size:255" json:"description"`
	Type        string          `gorm:"size:10;not null" json:"type"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
	AccountID   string          `gorm:"size:36;index;not null" json:"accountId"`
	CategoryID  *string         `gorm:"size:36" json:"categoryId"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Goal struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	Name          string          `gorm:"size:100;not null" json:"name"`
	Description   string          `gorm:"size:255" json:"description,omitempty"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric;not null" json:"targetAmount"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric;not null" json:"currentAmount"`
	TargetDate    *time.Time      `json:"targetDate,omitempty"`
	Icon          string          `gorm:"size:50" json:"icon"`
	Color         string          `gorm:"size:20" json:"color"`
	IsCompleted   bool            `gorm:"not null;default:false" json:"isCompleted"`
	IsActive      bool            `gorm:"index;not null;default:true" json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type Reminder struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Message   string    `gorm:"size:255" json:"message,omitempty"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	Frequency string    `gorm:"size:10;not null" json:"frequency"`
	NextDate  time.Time `gorm:"index;not null" json:"nextDate"`
	IsActive  bool      `gorm:"index;not null;default:true" json:"isActive"`
	GoalID    *string   `gorm:"size:36" json:"goalId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Category struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Type     string `gorm:"size:10;not null" json:"type"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`
}

// Settings is a singleton row keyed by the literal id "settings".
type Settings struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	BrokerToken string    `gorm:"size:255" json:"-"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const SettingsID = "settings"

type PushSubscription struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Endpoint  string    `gorm:"size:500;uniqueIndex" json:"endpoint"`
	P256dh    string    `gorm:"size:255" json:"p256dh"`
	Auth      string    `gorm:"size:255" json:"auth"`
	CreatedAt time.Time `json:"createdAt"`
}
