package wren

// DefaultBaseURL is the versioned API root every endpoint path hangs off.
const DefaultBaseURL = "https://api.twitter.com/1.1"

// Endpoint paths, relative to the base URL.
const (
	EndpointSearch = "/search/tweets.json"

	EndpointUsersLookup = "/users/lookup.json"
	EndpointUsersShow   = "/users/show.json"
	EndpointUsersSearch = "/users/search.json"
	EndpointReportSpam  = "/users/report_spam.json"

	EndpointFriendshipShow    = "/friendships/show.json"
	EndpointFriendshipLookup  = "/friendships/lookup.json"
	EndpointFriendshipUpdate  = "/friendships/update.json"
	EndpointFollow            = "/friendships/create.json"
	EndpointUnfollow          = "/friendships/destroy.json"
	EndpointIncomingRequests  = "/friendships/incoming.json"
	EndpointOutgoingRequests  = "/friendships/outgoing.json"
	EndpointFriendsNoRetweets = "/friendships/no_retweets/ids.json"

	EndpointFriendsList   = "/friends/list.json"
	EndpointFriendsIDs    = "/friends/ids.json"
	EndpointFollowersList = "/followers/list.json"
	EndpointFollowersIDs  = "/followers/ids.json"

	EndpointBlocksList = "/blocks/list.json"
	EndpointBlocksIDs  = "/blocks/ids.json"
	EndpointBlock      = "/blocks/create.json"
	EndpointUnblock    = "/blocks/destroy.json"

	EndpointMutesList = "/mutes/users/list.json"
	EndpointMutesIDs  = "/mutes/users/ids.json"
	EndpointMute      = "/mutes/users/create.json"
	EndpointUnmute    = "/mutes/users/destroy.json"
)
