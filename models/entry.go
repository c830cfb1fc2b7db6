package models

import "time"

// DeviceType tags an entry with the kind of sensor that produced it.
type DeviceType string

const (
	DeviceTank        DeviceType = "tank"
	DeviceMotion      DeviceType = "motion"
	DeviceTemperature DeviceType = "temperature"
	DeviceLight       DeviceType = "light"
)

// DeviceTypes lists every accepted device type.
var DeviceTypes = []DeviceType{DeviceTank, DeviceMotion, DeviceTemperature, DeviceLight}

// ParseDeviceType returns the device type named by s and whether it is known.
func ParseDeviceType(s string) (DeviceType, bool) {
	for _, dt := range DeviceTypes {
		if string(dt) == s {
			return dt, true
		}
	}
	return "", false
}

// MaxDeviceDataLen is the longest payload, in characters, an entry can hold.
const MaxDeviceDataLen = 250

// Entry is a single sensor reading. DeviceData is opaque to the backend.
type Entry struct {
	ID         uint       `json:"entry_id" gorm:"primaryKey"`
	UserID     uint       `json:"-" gorm:"not null;index:idx_entries_owner_device"`
	DeviceType DeviceType `json:"entry_device" gorm:"size:40;not null;index:idx_entries_owner_device"`
	DeviceData string     `json:"entry_data" gorm:"size:250;not null"`
	Created    time.Time  `json:"entry_date" gorm:"autoCreateTime;index"`
}

func (Entry) TableName() string {
	return "entries"
}
