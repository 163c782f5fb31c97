package location

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/smartpark-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/money"
	"github.com/nekogravitycat/smartpark-backend/internal/pricing"
)

var (
	ErrNameRequired  = apperror.Validation("location name is required")
	ErrInvalidAmount = apperror.Validation("price must be a positive amount")
	ErrInvalidHours  = apperror.Validation("base duration must be at least one hour")
)

const (
	DefaultName     = "College Campus Parking"
	DefaultDuration = 7

	surveillanceOn  = "Full 24/7 CCTV Surveillance"
	surveillanceOff = "No Surveillance"
)

// DefaultAmount is the flat price of the default plan.
var DefaultAmount = decimal.NewFromInt(20)

// Pricing is the stored pricing plan of the site.
type Pricing struct {
	Amount   decimal.Decimal `json:"amount"`
	Duration int             `json:"duration"` // hours
	Label    string          `json:"label"`
}

// Plan converts the stored pricing into a calculator plan.
func (p Pricing) Plan() pricing.Plan {
	return pricing.Plan{Amount: p.Amount, Duration: p.Duration}
}

// Config is the location configuration singleton.
type Config struct {
	Name         string  `json:"name"`
	Pricing      Pricing `json:"pricing"`
	Surveillance bool    `json:"surveillance"`
	Description  string  `json:"description"`
}

// Default returns the configuration used when nothing is stored.
func Default() *Config {
	c := &Config{
		Name:         DefaultName,
		Pricing:      Pricing{Amount: DefaultAmount, Duration: DefaultDuration},
		Surveillance: true,
	}
	c.derive()
	return c
}

// PricingLabel renders a plan like "₹20 for 7 Hours".
func PricingLabel(amount decimal.Decimal, hours int) string {
	return fmt.Sprintf("%s for %d Hours", money.Format(amount), hours)
}

// derive recomputes the display label and description.
func (c *Config) derive() {
	c.Pricing.Label = PricingLabel(c.Pricing.Amount, c.Pricing.Duration)
	if c.Surveillance {
		c.Description = surveillanceOn
	} else {
		c.Description = surveillanceOff
	}
}

// Update carries a configuration change. Nil fields keep their current value.
type Update struct {
	Name         *string
	Amount       *decimal.Decimal
	Duration     *int
	Surveillance *bool
}

// Apply returns the configuration with u applied, leaving c untouched
// when the result would be invalid.
func (c *Config) Apply(u Update) (*Config, error) {
	next := *c
	if u.Name != nil {
		next.Name = strings.TrimSpace(*u.Name)
	}
	if u.Amount != nil {
		next.Pricing.Amount = *u.Amount
	}
	if u.Duration != nil {
		next.Pricing.Duration = *u.Duration
	}
	if u.Surveillance != nil {
		next.Surveillance = *u.Surveillance
	}

	if err := next.Validate(); err != nil {
		return nil, err
	}
	next.derive()
	return &next, nil
}

// Validate checks the fields pricing and display depend on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	if !c.Pricing.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if c.Pricing.Duration < 1 {
		return ErrInvalidHours
	}
	return nil
}
