package handlers

import (
	"littlelemon/internal/access"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// GroupHandler handles membership of the Manager and Delivery Crew groups.
// Wrong roles get 403.
type GroupHandler struct {
	groups *services.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groups *services.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// RegisterRoutes registers one set of member routes per group.
func (h *GroupHandler) RegisterRoutes(router fiber.Router) {
	for path, group := range map[string]string{
		"/groups/manager/users":       access.GroupManager,
		"/groups/delivery-crew/users": access.GroupDeliveryCrew,
	} {
		members := router.Group(path)
		members.Get("/", h.HandleGetMembers(group))
		members.Post("/", h.HandleAddMember(group))
		members.Delete("/:id", h.HandleRemoveMember(group))
	}
}

// HandleGetMembers lists the members of group.
func (h *GroupHandler) HandleGetMembers(group string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return respondError(c, err, fiber.StatusForbidden)
		}
		users, err := h.groups.Members(c.UserContext(), p, group)
		if err != nil {
			return respondError(c, err, fiber.StatusForbidden)
		}
		return respondList(c, newMemberResponses(users), int64(len(users)))
	}
}

// HandleAddMember adds the user named in the body to group.
func (h *GroupHandler) HandleAddMember(group string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return respondError(c, err, fiber.StatusForbidden)
		}
		var in services.MembershipInput
		if err := parseBody(c, &in); err != nil {
			return respondError(c, err, fiber.StatusForbidden)
		}

		user, err := h.groups.AddMember(c.UserContext(), p, group, in)
		if err != nil {
			return respondError(c, err, fiber.StatusForbidden)
		}
		return c.Status(fiber.StatusCreated).JSON(memberResponse{ID: user.ID, Username: user.Username, Email: user.Email})
	}
}

// HandleRemoveMember removes the user in the path from group.
func (h *GroupHandler) HandleRemoveMember(group string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return respondError(c, err, fiber.StatusForbidden)
		}
		if err := h.groups.RemoveMember(c.UserContext(), p, group, c.Params("id")); err != nil {
			return respondError(c, err, fiber.StatusForbidden)
		}
		return c.JSON(fiber.Map{"message": "User removed from " + group})
	}
}
