package model

import (
	"fmt"
	"strings"
)

// Role is an employee role tag
type Role string

const (
	RoleLeader Role = "LEADER"
	RoleStaff  Role = "STAFF"
)

var roleAliases = map[string]Role{
	"LEADER":      RoleLeader,
	"LIDER":       RoleLeader,
	"STAFF":       RoleStaff,
	"COLABORADOR": RoleStaff,
}

// ParseRole converts a raw role tag into a Role
func ParseRole(tag string) (Role, error) {
	role, ok := roleAliases[strings.ToUpper(strings.TrimSpace(tag))]
	if !ok {
		return "", fmt.Errorf("unknown role %q", tag)
	}
	return role, nil
}
