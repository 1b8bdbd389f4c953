package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/kudilabs/kudi-client/internal/client/api"
	"github.com/kudilabs/kudi-client/internal/client/referral"
	"github.com/kudilabs/kudi-client/internal/common"
)

// Refer saves a referral code (or invite link) locally. Attachment itself
// happens automatically after the next login; when already logged in the
// attach is attempted right away.
func (a *App) Refer(ctx context.Context, args []string) error {
	if len(args) == 0 {
		if code := a.sessions.PendingRefCode(ctx); code != "" {
			fmt.Printf("Pending referral code: %s\n", code)
		} else {
			fmt.Println("No referral code saved. Usage: refer <REF-XXXX or invite link>")
		}
		return nil
	}

	code := args[0]
	if strings.Contains(code, "://") {
		extracted := referral.CodeFromInviteURL(code)
		if extracted == "" {
			return fmt.Errorf("no ?ref= code in that link")
		}
		code = extracted
	}

	if err := a.referrals.Save(ctx, code); err != nil {
		return err
	}
	if code == "" {
		fmt.Println("Referral code cleared.")
		return nil
	}
	fmt.Println("Referral code saved.")

	if a.isLoggedIn(ctx) {
		if err := a.referrals.AttachPending(ctx); err != nil {
			return fmt.Errorf("%s", api.MapReferralError(err))
		}
	}
	return nil
}

// Invite prints the user's own invite link and share text. Sharing is
// gated on a nickname plus all follow tasks, like the dashboard does.
func (a *App) Invite(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		return common.ErrUnauthorized
	}

	s := a.summary.Current()
	if s == nil {
		var err error
		if s, err = a.summary.Refresh(ctx); err != nil {
			return err
		}
	}
	if s.RefCode == "" {
		return fmt.Errorf("no referral code assigned yet")
	}

	link := referral.InviteLink(a.config.DashboardURL, s.RefCode)
	fmt.Println(link)

	if s.Nickname == "" || !a.profiles.AllFollowDone(ctx) {
		fmt.Println("(set a nickname and finish the follow tasks to unlock sharing)")
		return nil
	}
	fmt.Printf("Share text: KUDI SKUNK — join my lobby. Use my invite link: %s\n", link)
	return nil
}
