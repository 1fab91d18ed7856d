package listing

import "strings"

// Availability buckets.
const (
	Available = "available"
	Sold      = "sold"
	Reserved  = "reserved"
)

// Condition markers in their canonical spaced form.
const (
	ConditionFirstHand  = "มือ 1"
	ConditionSecondHand = "มือ 2"
)

var availabilitySynonyms = map[string]string{
	"available":    Available,
	"active":       Available,
	"for sale":     Available,
	"ว่าง":         Available,
	"พร้อมขาย":     Available,
	"พร้อมให้เช่า": Available,
	"ยังไม่ขาย":    Available,
	"sold":         Sold,
	"rented":       Sold,
	"ขายแล้ว":      Sold,
	"เช่าแล้ว":     Sold,
	"ปิดการขาย":    Sold,
	"reserved":     Reserved,
	"pending":      Reserved,
	"จอง":          Reserved,
	"จองแล้ว":      Reserved,
	"ติดจอง":       Reserved,
}

var conditionSynonyms = map[string]string{
	"มือ 1":       ConditionFirstHand,
	"มือ1":        ConditionFirstHand,
	"มือหนึ่ง":    ConditionFirstHand,
	"hand 1":      ConditionFirstHand,
	"hand1":       ConditionFirstHand,
	"first-hand":  ConditionFirstHand,
	"first hand":  ConditionFirstHand,
	"new":         ConditionFirstHand,
	"มือ 2":       ConditionSecondHand,
	"มือ2":        ConditionSecondHand,
	"มือสอง":      ConditionSecondHand,
	"hand 2":      ConditionSecondHand,
	"hand2":       ConditionSecondHand,
	"second-hand": ConditionSecondHand,
	"second hand": ConditionSecondHand,
	"resale":      ConditionSecondHand,
}

var typeLabels = map[string]string{
	"house":      "บ้านเดี่ยว",
	"twin_house": "บ้านแฝด",
	"townhouse":  "ทาวน์เฮาส์",
	"townhome":   "ทาวน์โฮม",
	"condo":      "คอนโด",
	"land":       "ที่ดิน",
	"commercial": "อาคารพาณิชย์",
	"apartment":  "อพาร์ทเมนท์",
	"warehouse":  "โกดัง",
}

// NormalizeAvailability maps known availability codes and Thai synonyms onto
// Available, Sold or Reserved. Unknown values come back trimmed and lowercased;
// empty input stays empty.
func NormalizeAvailability(raw string) string {
	key := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if v, ok := availabilitySynonyms[key]; ok {
		return v
	}
	return key
}

// NormalizeCondition maps condition spellings onto ConditionFirstHand or
// ConditionSecondHand. Unknown values come back trimmed and lowercased.
func NormalizeCondition(raw string) string {
	key := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if v, ok := conditionSynonyms[key]; ok {
		return v
	}
	return key
}

// TypeLabel returns the display label of a property type code, or the code itself.
func TypeLabel(code string) string {
	if label, ok := typeLabels[strings.ToLower(code)]; ok {
		return label
	}
	return code
}
