package store

import (
	"database/sql"
	"fmt"
	"strconv"
)

// GetSetting reads one settings value.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("setting not found: %s", key)
		}
		return "", err
	}
	return value, nil
}

// SetSetting writes one settings value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}

// GetSettingInt reads an integer settings value.
func (s *Store) GetSettingInt(key string) (int, error) {
	value, err := s.GetSetting(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

// SetSettingInt writes an integer settings value.
func (s *Store) SetSettingInt(key string, value int) error {
	return s.SetSetting(key, strconv.Itoa(value))
}

// GetSettingFloat reads a float settings value.
func (s *Store) GetSettingFloat(key string) (float64, error) {
	value, err := s.GetSetting(key)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(value, 64)
}

// SetSettingFloat writes a float settings value.
func (s *Store) SetSettingFloat(key string, value float64) error {
	return s.SetSetting(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// Tariff override keys. An absent key means the config default applies.
const (
	SettingAllowanceKg       = "allowance_kg"
	SettingFuelSurchargeRate = "fuel_surcharge_rate"
)

// GetBillingPeriod returns the persisted billing year/month.
func (s *Store) GetBillingPeriod() (year, month int, err error) {
	year, err = s.GetSettingInt("billing_year")
	if err != nil {
		return 0, 0, err
	}
	month, err = s.GetSettingInt("billing_month")
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

// SetBillingPeriod persists the billing year/month.
func (s *Store) SetBillingPeriod(year, month int) error {
	if err := s.SetSettingInt("billing_year", year); err != nil {
		return err
	}
	return s.SetSettingInt("billing_month", month)
}
