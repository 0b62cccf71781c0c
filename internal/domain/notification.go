package domain

type NotificationType string

const (
	NotificationNewBooking       NotificationType = "NEW_BOOKING"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationCheckIn          NotificationType = "CHECK_IN"
	NotificationCheckOut         NotificationType = "CHECK_OUT"
	NotificationDepositCaptured  NotificationType = "DEPOSIT_CAPTURED"
	NotificationReturnReminder   NotificationType = "RETURN_REMINDER"
	NotificationLowStock         NotificationType = "LOW_STOCK"
)

var NotificationTypes = []NotificationType{
	NotificationNewBooking,
	NotificationBookingCancelled,
	NotificationCheckIn,
	NotificationCheckOut,
	NotificationDepositCaptured,
	NotificationReturnReminder,
	NotificationLowStock,
}

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleOperator   Role = "OPERATOR"
	RoleAccounting Role = "ACCOUNTING"
)

var Roles = []Role{RoleAdmin, RoleManager, RoleOperator, RoleAccounting}

// NotificationSetting is one row of the role visibility matrix.
type NotificationSetting struct {
	ID    string            `json:"id,omitempty"`
	Type  NotificationType  `json:"type" validate:"required"`
	Brand string            `json:"brand"`
	Roles map[Role]bool     `json:"roles"`
	Extra map[string]string `json:"attributes,omitempty"`
}

// VisibleTo reports whether role receives this notification type.
func (n NotificationSetting) VisibleTo(role Role) bool {
	return n.Roles[role]
}

// NotificationMatrix returns one setting per known type, merged over stored rows.
func NotificationMatrix(brand string, stored []NotificationSetting) []NotificationSetting {
	byType := make(map[NotificationType]NotificationSetting, len(stored))
	for _, s := range stored {
		byType[s.Type] = s
	}
	out := make([]NotificationSetting, 0, len(NotificationTypes))
	for _, t := range NotificationTypes {
		s, ok := byType[t]
		if !ok {
			s = NotificationSetting{Type: t, Roles: map[Role]bool{RoleAdmin: true}}
		}
		s.Brand = brand
		if s.Roles == nil {
			s.Roles = map[Role]bool{}
		}
		out = append(out, s)
		delete(byType, t)
	}
	// Keep types introduced by other apps that this service does not know yet.
	for _, s := range stored {
		if _, unknown := byType[s.Type]; unknown {
			s.Brand = brand
			out = append(out, s)
			delete(byType, s.Type)
		}
	}
	return out
}
