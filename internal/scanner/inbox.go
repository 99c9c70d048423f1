package scanner

import (
	"context"
	"strings"
)

// Inbox message patterns that drive the community lifecycle.
const (
	inviteGreeting    = "gadzooks!"
	inviteSubject     = "invitation to moderate"
	removalBodyMarker = "You have been removed as a moderator from "
)

// HandleInbox drains unread inbox messages. Invitation messages start
// tracking a community, removal notices stop it, and everything else is
// marked read and ignored. Inbox failures are logged and skipped so control
// message handling never stalls the scan loop.
func (s *Scanner) HandleInbox(ctx context.Context) {
	messages, err := s.reddit.UnreadMessages(ctx)
	if err != nil {
		s.log.Error("Failed to fetch unread messages", "error", err)
		return
	}

	for i := range messages {
		message := &messages[i]
		switch {
		case isInvitation(message.Subject, message.Body):
			s.acceptInvite(ctx, message.Community)
		case strings.Contains(message.Body, removalBodyMarker) && message.Community != "":
			// Removal notices without a community reference are dropped
			s.handleRemoval(message.Community)
		}
		if err := s.reddit.MarkRead(ctx, message.Fullname); err != nil {
			s.log.Warn("Failed to mark message read",
				"message", message.Fullname, "error", err)
		}
	}
}

func isInvitation(subject, body string) bool {
	return strings.HasPrefix(body, "**"+inviteGreeting) ||
		strings.HasPrefix(body, inviteGreeting) ||
		strings.Contains(subject, inviteSubject)
}

// acceptInvite accepts a moderator invitation and starts tracking the
// community, entering it in the backfill state. Re-accepting an already
// tracked community is a no-op at the store level.
func (s *Scanner) acceptInvite(ctx context.Context, community string) {
	if community == "" {
		s.log.Warn("Invitation message carried no community, ignoring")
		return
	}
	if err := s.reddit.AcceptModInvite(ctx, community); err != nil {
		s.log.Error("Failed to accept moderator invite",
			"community", community, "error", err)
		return
	}
	if err := s.store.SaveCommunity(community); err != nil {
		s.log.Error("Failed to record tracked community",
			"community", community, "error", err)
		return
	}
	if err := s.refreshCommunities(); err != nil {
		s.log.Error("Failed to refresh community list", "error", err)
	}
	s.log.Info("Accepted moderator invite", "community", community)
}

// handleRemoval stops tracking a community after the bot loses moderator
// status there.
func (s *Scanner) handleRemoval(community string) {
	if err := s.store.DeleteCommunity(community); err != nil {
		s.log.Error("Failed to delete tracked community",
			"community", community, "error", err)
		return
	}
	if err := s.refreshCommunities(); err != nil {
		s.log.Error("Failed to refresh community list", "error", err)
	}
	s.log.Info("Handled removal from community", "community", community)
}
