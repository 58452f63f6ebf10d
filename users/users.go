// Package users exposes the user lookup, relationship, and moderation
// endpoints, plus the cursored friend/follower/block/mute collections.
package users

import (
	"strconv"
	"strings"

	"github.com/wrenkit/wren/params"
)

// UserID addresses an account by numeric ID or by screen name. The zero
// value is invalid; construct one with [ID] or [ScreenName].
type UserID struct {
	id   uint64
	name string
}

// ID addresses an account by its numeric ID.
func ID(id uint64) UserID {
	return UserID{id: id}
}

// ScreenName addresses an account by its screen name.
func ScreenName(name string) UserID {
	return UserID{name: name}
}

// addNameParam sets either the user_id or screen_name parameter for a
// single-account call.
func addNameParam(p params.List, acct UserID) params.List {
	if acct.name != "" {
		return p.Add("screen_name", acct.name)
	}

	return p.Add("user_id", strconv.FormatUint(acct.id, 10))
}

// multipleNamesParam splits a mixed batch of accounts into the comma-
// separated user_id and screen_name parameters the batch endpoints take.
func multipleNamesParam(accts []UserID) (ids, names string) {
	var idList, nameList []string
	for _, a := range accts {
		if a.name != "" {
			nameList = append(nameList, a.name)
			continue
		}
		idList = append(idList, strconv.FormatUint(a.id, 10))
	}

	return strings.Join(idList, ","), strings.Join(nameList, ",")
}

// User is a decoded account profile.
type User struct {
	ID             uint64 `json:"id"`
	ScreenName     string `json:"screen_name"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Protected      bool   `json:"protected"`
	FollowersCount int    `json:"followers_count"`
	FriendsCount   int    `json:"friends_count"`
	StatusesCount  int    `json:"statuses_count"`
	Verified       bool   `json:"verified"`
}

// Relationship describes the follow state between a source and a target
// account, as reported by the friendship show endpoint.
type Relationship struct {
	Source RelationshipSide `json:"source"`
	Target RelationshipSide `json:"target"`
}

// RelationshipSide is one side of a [Relationship].
type RelationshipSide struct {
	ID         uint64 `json:"id"`
	ScreenName string `json:"screen_name"`
	Following  bool   `json:"following"`
	FollowedBy bool   `json:"followed_by"`
	Blocking   bool   `json:"blocking"`
	Muting     bool   `json:"muting"`
}

// RelationLookup is one entry of the batched friendship lookup: the
// connections between the authenticated user and one other account.
type RelationLookup struct {
	ID          uint64   `json:"id"`
	ScreenName  string   `json:"screen_name"`
	Name        string   `json:"name"`
	Connections []string `json:"connections"`
}
