// Package authz описывает права как предикаты над (actor, цепочка владения).
// Каждая операция объявляет нужные ей Capability, проверка выполняется одинаково через Require.
package authz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// ErrForbidden возвращается, когда ни одно из требуемых прав не выполнено
var ErrForbidden = errors.New("authz: forbidden")

// Capability именованный предикат над актором
type Capability struct {
	name  string
	allow func(actor domain.Actor) bool
}

func (c Capability) String() string {
	return c.name
}

// Allows проверяет право для актора
func (c Capability) Allows(actor domain.Actor) bool {
	if c.allow == nil || actor.ID <= 0 {
		return false
	}
	return c.allow(actor)
}

// HasRole актор имеет роль
func HasRole(role domain.Role) Capability {
	return Capability{
		name: "role:" + string(role),
		allow: func(a domain.Actor) bool {
			return a.Role == role
		},
	}
}

// IsManager актор - менеджер
func IsManager() Capability {
	return HasRole(domain.RoleManager)
}

// IsOrganizer актор - организатор
func IsOrganizer() Capability {
	return HasRole(domain.RoleOrganizer)
}

// ManagerOf актор - менеджер, владеющий центром с указанным managerID
func ManagerOf(managerID int64) Capability {
	return Capability{
		name: fmt.Sprintf("manager-of:%d", managerID),
		allow: func(a domain.Actor) bool {
			return a.Role == domain.RoleManager && a.ID == managerID
		},
	}
}

// OrganizerOf актор - организатор, создавший бронирование
func OrganizerOf(organizerID int64) Capability {
	return Capability{
		name: fmt.Sprintf("organizer-of:%d", organizerID),
		allow: func(a domain.Actor) bool {
			return a.Role == domain.RoleOrganizer && a.ID == organizerID
		},
	}
}

// AnyOf выполнено хотя бы одно право
func AnyOf(caps ...Capability) Capability {
	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = c.name
	}
	return Capability{
		name: "any(" + strings.Join(names, ",") + ")",
		allow: func(a domain.Actor) bool {
			for _, c := range caps {
				if c.Allows(a) {
					return true
				}
			}
			return false
		},
	}
}

// Require проверяет, что актор обладает всеми перечисленными правами
func Require(actor domain.Actor, caps ...Capability) error {
	for _, c := range caps {
		if !c.Allows(actor) {
			return fmt.Errorf("%w: actor=%d role=%s lacks %s", ErrForbidden, actor.ID, actor.Role, c)
		}
	}
	return nil
}

// Can то же, что Require, но без ошибки
func Can(actor domain.Actor, caps ...Capability) bool {
	return Require(actor, caps...) == nil
}
