package bot

import (
	"context"
	"fmt"
	"strconv"

	"fortuna/domain/entities"
	"fortuna/domain/interfaces"
	"fortuna/domain/services"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) adminService(uow interfaces.UnitOfWork) interfaces.AdminService {
	return services.NewAdminService(b.ledgerService(uow), uow.AccountRepository())
}

// isAdmin reports whether the message author holds the Administrator
// permission in the channel the command came from. DMs and state-cache
// misses count as not admin.
func (b *Bot) isAdmin(m *discordgo.MessageCreate) bool {
	perms, err := b.session.State.MessagePermissions(m.Message)
	if err != nil {
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0
}

func (b *Bot) requireAdmin(m *discordgo.MessageCreate) error {
	if !b.isAdmin(m) {
		return entities.NewValidationError("this command requires the Administrator permission")
	}
	return nil
}

// adminTarget resolves the mentioned account from the first argument.
func adminTarget(m *discordgo.MessageCreate, args []string) (int64, string, error) {
	if len(args) < 1 {
		return 0, "", entities.NewValidationError("mention the target user, e.g. @user")
	}
	idStr, ok := parseMention(args[0])
	if !ok {
		return 0, "", entities.NewValidationError("mention the target user, e.g. @user")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, "", entities.NewValidationError("invalid target user")
	}
	name := idStr
	if len(m.Mentions) > 0 {
		name = m.Mentions[0].Username
	}
	return id, name, nil
}

func (b *Bot) handleAddBalance(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	if err := b.requireAdmin(m); err != nil {
		return err
	}
	targetID, targetName, err := adminTarget(m, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return entities.NewValidationError("usage: %saddbalance @user <amount>", b.prefix)
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return entities.NewValidationError("invalid amount %q", args[1])
	}

	var result *interfaces.AdminAdjustResult
	err = b.withUow(ctx, func(uow interfaces.UnitOfWork) error {
		result, err = b.adminService(uow).AddBalance(ctx, m.Author.Username, targetID, targetName, amount)
		return err
	})
	if err != nil {
		return err
	}

	b.reply(m, fmt.Sprintf("🛠️ Added **%s** coins to %s. Their balance: **%s**.",
		formatAmount(result.Amount), targetName, formatAmount(result.NewBalance)))
	return nil
}

func (b *Bot) handleRemoveBalance(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	if err := b.requireAdmin(m); err != nil {
		return err
	}
	targetID, targetName, err := adminTarget(m, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return entities.NewValidationError("usage: %sremovebalance @user <amount>", b.prefix)
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return entities.NewValidationError("invalid amount %q", args[1])
	}

	var result *interfaces.AdminAdjustResult
	err = b.withUow(ctx, func(uow interfaces.UnitOfWork) error {
		result, err = b.adminService(uow).RemoveBalance(ctx, m.Author.Username, targetID, targetName, amount)
		return err
	})
	if err != nil {
		return err
	}

	b.reply(m, fmt.Sprintf("🛠️ Removed **%s** coins from %s. Their balance: **%s**.",
		formatAmount(result.Amount), targetName, formatAmount(result.NewBalance)))
	return nil
}

func (b *Bot) handleResetBalance(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	if err := b.requireAdmin(m); err != nil {
		return err
	}
	targetID, targetName, err := adminTarget(m, args)
	if err != nil {
		return err
	}

	var result *interfaces.AdminAdjustResult
	err = b.withUow(ctx, func(uow interfaces.UnitOfWork) error {
		result, err = b.adminService(uow).ResetBalance(ctx, m.Author.Username, targetID, targetName)
		return err
	})
	if err != nil {
		return err
	}

	b.reply(m, fmt.Sprintf("🛠️ Reset %s's balance to zero (removed **%s** coins).",
		targetName, formatAmount(result.Amount)))
	return nil
}

func (b *Bot) handleResetMining(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	if err := b.requireAdmin(m); err != nil {
		return err
	}
	targetID, targetName, err := adminTarget(m, args)
	if err != nil {
		return err
	}

	err = b.withUow(ctx, func(uow interfaces.UnitOfWork) error {
		return b.adminService(uow).ResetMining(ctx, targetID, targetName)
	})
	if err != nil {
		return err
	}

	b.reply(m, fmt.Sprintf("🛠️ Reset %s's mining equipment to level 1.", targetName))
	return nil
}
