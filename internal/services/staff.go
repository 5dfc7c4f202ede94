package services

import (
	"context"

	"github.com/devansh1234523/whole-sale/internal/models"
)

// ToggleStaffStatus flips a staff member between active and inactive.
func ToggleStaffStatus(ctx context.Context, staff *StaffMembers, id int) (models.StaffMember, bool, error) {
	return staff.Update(ctx, id, func(m *models.StaffMember) error {
		if m.Status == models.StaffActive {
			m.Status = models.StaffInactive
		} else {
			m.Status = models.StaffActive
		}
		return nil
	})
}
