package models

import "encoding/xml"

// SMS message direction constants from the backup schema
const (
	SMSTypeReceived = 1
	SMSTypeSent     = 2
)

// SMS represents a single SMS message from the XML backup
type SMS struct {
	Address       string `xml:"address,attr"`
	Body          string `xml:"body,attr"`
	Date          string `xml:"date,attr"`
	ReadableDate  string `xml:"readable_date,attr"`
	Type          int    `xml:"type,attr"`
	ServiceCenter string `xml:"service_center,attr"`
}

// SMSBackup represents the root of the XML document
type SMSBackup struct {
	XMLName xml.Name `xml:"smses"`
	Count   int      `xml:"count,attr"`
	SMS     []SMS    `xml:"sms"`
}
