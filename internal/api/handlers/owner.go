package handlers

import (
	"fmt"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
)

// ParseOwnerType конвертирует сегмент URL (salons | staff) в domain.OwnerType
func ParseOwnerType(segment string) (domain.OwnerType, error) {
	switch segment {
	case "salons":
		return domain.OwnerSalon, nil
	case "staff":
		return domain.OwnerStaff, nil
	default:
		return "", fmt.Errorf("unknown owner type segment: %q", segment)
	}
}
