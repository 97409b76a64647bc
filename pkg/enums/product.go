package enums

import "fmt"

// ProductStatus tracks stock availability independently of moderation.
type ProductStatus string

const (
	ProductStatusAvailable  ProductStatus = "AVAILABLE"
	ProductStatusOutOfStock ProductStatus = "OUT_OF_STOCK"
	ProductStatusDraft      ProductStatus = "DRAFT"
	ProductStatusSold       ProductStatus = "SOLD"
)

var validProductStatuses = []ProductStatus{
	ProductStatusAvailable,
	ProductStatusOutOfStock,
	ProductStatusDraft,
	ProductStatusSold,
}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}

// SubmissionStatus is the moderation state of a user-submitted product.
// Admin-created products carry no submission status at all.
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "PENDING_APPROVAL"
	SubmissionStatusApproved SubmissionStatus = "APPROVED"
	SubmissionStatusRejected SubmissionStatus = "REJECTED"
)

var validSubmissionStatuses = []SubmissionStatus{
	SubmissionStatusPending,
	SubmissionStatusApproved,
	SubmissionStatusRejected,
}

// String implements fmt.Stringer.
func (s SubmissionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SubmissionStatus.
func (s SubmissionStatus) IsValid() bool {
	for _, candidate := range validSubmissionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSubmissionStatus converts raw input into a SubmissionStatus.
func ParseSubmissionStatus(value string) (SubmissionStatus, error) {
	for _, candidate := range validSubmissionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid submission status %q", value)
}

// ProductCondition describes the physical state of the listed item.
type ProductCondition string

const (
	ProductConditionNew         ProductCondition = "NEW"
	ProductConditionUsed        ProductCondition = "USED"
	ProductConditionRefurbished ProductCondition = "REFURBISHED"
)

var validProductConditions = []ProductCondition{
	ProductConditionNew,
	ProductConditionUsed,
	ProductConditionRefurbished,
}

// String implements fmt.Stringer.
func (c ProductCondition) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCondition.
func (c ProductCondition) IsValid() bool {
	for _, candidate := range validProductConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCondition converts raw input into a ProductCondition.
func ParseProductCondition(value string) (ProductCondition, error) {
	for _, candidate := range validProductConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product condition %q", value)
}

// ProductType drives the price-secrecy rule: MACHINERY listings never expose
// price in public responses.
type ProductType string

const (
	ProductTypeMachinery   ProductType = "MACHINERY"
	ProductTypeSparePart   ProductType = "SPARE_PART"
	ProductTypeEquipment   ProductType = "EQUIPMENT"
	ProductTypeRawMaterial ProductType = "RAW_MATERIAL"
)

var validProductTypes = []ProductType{
	ProductTypeMachinery,
	ProductTypeSparePart,
	ProductTypeEquipment,
	ProductTypeRawMaterial,
}

// String implements fmt.Stringer.
func (t ProductType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ProductType.
func (t ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}

// MachineType sub-classifies MACHINERY listings.
type MachineType string

const (
	MachineTypeCNC              MachineType = "CNC"
	MachineTypeLathe            MachineType = "LATHE"
	MachineTypeMilling          MachineType = "MILLING"
	MachineTypePress            MachineType = "PRESS"
	MachineTypeWelding          MachineType = "WELDING"
	MachineTypeInjectionMolding MachineType = "INJECTION_MOLDING"
	MachineTypeOther            MachineType = "OTHER"
)

var validMachineTypes = []MachineType{
	MachineTypeCNC,
	MachineTypeLathe,
	MachineTypeMilling,
	MachineTypePress,
	MachineTypeWelding,
	MachineTypeInjectionMolding,
	MachineTypeOther,
}

// String implements fmt.Stringer.
func (t MachineType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known MachineType.
func (t MachineType) IsValid() bool {
	for _, candidate := range validMachineTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseMachineType converts raw input into a MachineType.
func ParseMachineType(value string) (MachineType, error) {
	for _, candidate := range validMachineTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid machine type %q", value)
}
