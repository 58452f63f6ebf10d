package users

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wrenkit/wren"
	"github.com/wrenkit/wren/cursor"
	"github.com/wrenkit/wren/params"
	"github.com/wrenkit/wren/rated"
)

// lookupParams is the validated shape of a batched lookup.
type lookupParams struct {
	Accounts []UserID `param:"accounts" validate:"required,min=1,max=100"`
}

// Lookup fetches profile information for up to 100 accounts in one call,
// addressed by any mix of IDs and screen names.
func Lookup(ctx context.Context, c *wren.Client, accts []UserID) (rated.Response[[]User], error) {
	if err := params.Validate(lookupParams{Accounts: accts}); err != nil {
		return rated.Response[[]User]{}, fmt.Errorf("lookup params: %w", err)
	}

	ids, names := multipleNamesParam(accts)
	p := params.List{}.AddIf("user_id", ids).AddIf("screen_name", names)

	req, err := c.Post(ctx, wren.EndpointUsersLookup, p)
	if err != nil {
		return rated.Response[[]User]{}, err
	}

	return wren.ResolveJSON[[]User](ctx, c, req)
}

// Show fetches profile information for a single account.
func Show(ctx context.Context, c *wren.Client, acct UserID) (rated.Response[User], error) {
	req, err := c.Get(ctx, wren.EndpointUsersShow, addNameParam(params.List{}, acct))
	if err != nil {
		return rated.Response[User]{}, err
	}

	return wren.ResolveJSON[User](ctx, c, req)
}

// FriendsNoRetweets fetches the IDs the authenticating user has disabled
// retweets from. Use [UpdateFollow] to change that setting per account.
func FriendsNoRetweets(ctx context.Context, c *wren.Client) (rated.Response[[]uint64], error) {
	req, err := c.Get(ctx, wren.EndpointFriendsNoRetweets, params.List{})
	if err != nil {
		return rated.Response[[]uint64]{}, err
	}

	return wren.ResolveJSON[[]uint64](ctx, c, req)
}

// relationshipWire matches the envelope object the friendship show
// endpoint nests its payload in.
type relationshipWire struct {
	Relationship Relationship `json:"relationship"`
}

// Relation fetches the relationship settings between two arbitrary
// accounts.
func Relation(ctx context.Context, c *wren.Client, from, to UserID) (rated.Response[Relationship], error) {
	p := params.List{}
	if from.name != "" {
		p.Add("source_screen_name", from.name)
	} else {
		p.Add("source_id", strconv.FormatUint(from.id, 10))
	}
	if to.name != "" {
		p.Add("target_screen_name", to.name)
	} else {
		p.Add("target_id", strconv.FormatUint(to.id, 10))
	}

	req, err := c.Get(ctx, wren.EndpointFriendshipShow, p)
	if err != nil {
		return rated.Response[Relationship]{}, err
	}

	resp, err := wren.ResolveJSON[relationshipWire](ctx, c, req)
	if err != nil {
		return rated.Response[Relationship]{}, err
	}

	return rated.Map(resp, func(w relationshipWire) Relationship { return w.Relationship }), nil
}

// RelationLookupMany fetches the connections between the authenticated
// user and each of the given accounts.
func RelationLookupMany(ctx context.Context, c *wren.Client, accts []UserID) (rated.Response[[]RelationLookup], error) {
	if err := params.Validate(lookupParams{Accounts: accts}); err != nil {
		return rated.Response[[]RelationLookup]{}, fmt.Errorf("relation lookup params: %w", err)
	}

	ids, names := multipleNamesParam(accts)
	p := params.List{}.AddIf("user_id", ids).AddIf("screen_name", names)

	req, err := c.Get(ctx, wren.EndpointFriendshipLookup, p)
	if err != nil {
		return rated.Response[[]RelationLookup]{}, err
	}

	return wren.ResolveJSON[[]RelationLookup](ctx, c, req)
}

// Follow follows the given account and sets whether device notifications
// are enabled for it. Following a protected account sends a follow
// request instead, which still resolves as success.
func Follow(ctx context.Context, c *wren.Client, acct UserID, notifications bool) (rated.Response[User], error) {
	p := addNameParam(params.List{}, acct).Add("follow", strconv.FormatBool(notifications))

	return userAction(ctx, c, wren.EndpointFollow, p)
}

// Unfollow unfollows the given account. Unfollowing an account the user
// does not follow succeeds without changing anything.
func Unfollow(ctx context.Context, c *wren.Client, acct UserID) (rated.Response[User], error) {
	return userAction(ctx, c, wren.EndpointUnfollow, addNameParam(params.List{}, acct))
}

// UpdateFollow changes notification and retweet visibility settings for
// an account the user already follows. Passing nil leaves a setting
// untouched.
func UpdateFollow(ctx context.Context, c *wren.Client, acct UserID, notifications, retweets *bool) (rated.Response[Relationship], error) {
	p := addNameParam(params.List{}, acct)
	if notifications != nil {
		p.Add("device", strconv.FormatBool(*notifications))
	}
	if retweets != nil {
		p.Add("retweets", strconv.FormatBool(*retweets))
	}

	req, err := c.Post(ctx, wren.EndpointFriendshipUpdate, p)
	if err != nil {
		return rated.Response[Relationship]{}, err
	}

	resp, err := wren.ResolveJSON[relationshipWire](ctx, c, req)
	if err != nil {
		return rated.Response[Relationship]{}, err
	}

	return rated.Map(resp, func(w relationshipWire) Relationship { return w.Relationship }), nil
}

// Block blocks the given account.
func Block(ctx context.Context, c *wren.Client, acct UserID) (rated.Response[User], error) {
	return userAction(ctx, c, wren.EndpointBlock, addNameParam(params.List{}, acct))
}

// Unblock unblocks the given account.
func Unblock(ctx context.Context, c *wren.Client, acct UserID) (rated.Response[User], error) {
	return userAction(ctx, c, wren.EndpointUnblock, addNameParam(params.List{}, acct))
}

// ReportSpam blocks the given account and reports it for spam.
func ReportSpam(ctx context.Context, c *wren.Client, acct UserID) (rated.Response[User], error) {
	return userAction(ctx, c, wren.EndpointReportSpam, addNameParam(params.List{}, acct))
}

// Mute mutes the given account.
func Mute(ctx context.Context, c *wren.Client, acct UserID) (rated.Response[User], error) {
	return userAction(ctx, c, wren.EndpointMute, addNameParam(params.List{}, acct))
}

// Unmute unmutes the given account.
func Unmute(ctx context.Context, c *wren.Client, acct UserID) (rated.Response[User], error) {
	return userAction(ctx, c, wren.EndpointUnmute, addNameParam(params.List{}, acct))
}

// userAction runs one of the POST endpoints that answer with the affected
// user's profile.
func userAction(ctx context.Context, c *wren.Client, endpoint string, p params.List) (rated.Response[User], error) {
	req, err := c.Post(ctx, endpoint, p)
	if err != nil {
		return rated.Response[User]{}, err
	}

	return wren.ResolveJSON[User](ctx, c, req)
}

// UserCursor is one page of a cursored user collection.
type UserCursor struct {
	Previous int64  `json:"previous_cursor"`
	Next     int64  `json:"next_cursor"`
	Users    []User `json:"users"`
}

func (c UserCursor) NextCursorID() int64     { return c.Next }
func (c UserCursor) PreviousCursorID() int64 { return c.Previous }

// IDCursor is one page of a cursored ID collection.
type IDCursor struct {
	Previous int64    `json:"previous_cursor"`
	Next     int64    `json:"next_cursor"`
	IDs      []uint64 `json:"ids"`
}

func (c IDCursor) NextCursorID() int64     { return c.Next }
func (c IDCursor) PreviousCursorID() int64 { return c.Previous }

// FriendsOf pages through the accounts the given account follows.
// Defaults to 20 users per call; the maximum is 200.
func FriendsOf(c *wren.Client, acct UserID) *cursor.Iter[UserCursor] {
	return cursor.New[UserCursor](c, wren.EndpointFriendsList, addNameParam(params.List{}, acct), 20)
}

// FriendsIDs pages through the IDs the given account follows. Defaults to
// 500 IDs per call; the maximum is 5000.
func FriendsIDs(c *wren.Client, acct UserID) *cursor.Iter[IDCursor] {
	return cursor.New[IDCursor](c, wren.EndpointFriendsIDs, addNameParam(params.List{}, acct), 500)
}

// FollowersOf pages through the accounts that follow the given account.
// Defaults to 20 users per call; the maximum is 200.
func FollowersOf(c *wren.Client, acct UserID) *cursor.Iter[UserCursor] {
	return cursor.New[UserCursor](c, wren.EndpointFollowersList, addNameParam(params.List{}, acct), 20)
}

// FollowersIDs pages through the IDs that follow the given account.
// Defaults to 500 IDs per call; the maximum is 5000.
func FollowersIDs(c *wren.Client, acct UserID) *cursor.Iter[IDCursor] {
	return cursor.New[IDCursor](c, wren.EndpointFollowersIDs, addNameParam(params.List{}, acct), 500)
}

// Blocks pages through the accounts the authenticated user has blocked.
// The endpoint does not accept a page size.
func Blocks(c *wren.Client) *cursor.Iter[UserCursor] {
	return cursor.New[UserCursor](c, wren.EndpointBlocksList, nil, 0)
}

// BlocksIDs pages through the IDs the authenticated user has blocked.
// The endpoint does not accept a page size.
func BlocksIDs(c *wren.Client) *cursor.Iter[IDCursor] {
	return cursor.New[IDCursor](c, wren.EndpointBlocksIDs, nil, 0)
}

// Mutes pages through the accounts the authenticated user has muted.
// The endpoint does not accept a page size.
func Mutes(c *wren.Client) *cursor.Iter[UserCursor] {
	return cursor.New[UserCursor](c, wren.EndpointMutesList, nil, 0)
}

// MutesIDs pages through the IDs the authenticated user has muted.
// The endpoint does not accept a page size.
func MutesIDs(c *wren.Client) *cursor.Iter[IDCursor] {
	return cursor.New[IDCursor](c, wren.EndpointMutesIDs, nil, 0)
}

// IncomingRequests pages through the IDs with pending requests to follow
// the authenticated protected account.
func IncomingRequests(c *wren.Client) *cursor.Iter[IDCursor] {
	return cursor.New[IDCursor](c, wren.EndpointIncomingRequests, nil, 0)
}

// OutgoingRequests pages through the IDs the authenticated user has a
// pending follow request for.
func OutgoingRequests(c *wren.Client) *cursor.Iter[IDCursor] {
	return cursor.New[IDCursor](c, wren.EndpointOutgoingRequests, nil, 0)
}
