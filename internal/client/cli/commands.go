package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/coursekeeper/internal/client/state"
	"github.com/dmitrijs2005/coursekeeper/internal/common"
)

var errUsage = errors.New("usage")

// Signup prompts for credentials and registers them.
func (a *App) Signup(ctx context.Context) error {
	if err := a.requireAuthView("signup"); err != nil {
		return err
	}
	user, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	if err := a.manager.Signup(ctx, user, password); err != nil {
		return err
	}
	printlnFn(msgSignupOK)
	return nil
}

// Login prompts for credentials and opens the dashboard on success.
func (a *App) Login(ctx context.Context) error {
	if err := a.requireAuthView("login"); err != nil {
		return err
	}
	user, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	return a.manager.Login(ctx, user, password)
}

// requireAuthView rejects credential commands before any prompt is shown.
func (a *App) requireAuthView(cmd string) error {
	if v := a.view(); v != state.ViewAuth {
		return fmt.Errorf("%w: %s is not available in %s", common.ErrInvalidTransition, cmd, v)
	}
	return nil
}

func (a *App) readCredentials() (string, string, error) {
	user, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return "", "", err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(password)

	return user, string(password), nil
}

func (a *App) Logout(ctx context.Context) error {
	return a.manager.Logout(ctx)
}

// Courses redraws the current view.
func (a *App) Courses(ctx context.Context) error {
	a.manager.Render(ctx)
	return nil
}

// Open shows the detail view of the course named by arg.
func (a *App) Open(ctx context.Context, arg string) error {
	id, err := parseCourseID(arg)
	if err != nil {
		return err
	}
	return a.manager.SelectCourse(ctx, id)
}

func (a *App) Back(ctx context.Context) error {
	return a.manager.Back(ctx)
}

// Toggle flips completion of the course named by arg, or of the open course
// when arg is empty.
func (a *App) Toggle(ctx context.Context, arg string) error {
	var id int
	if arg == "" {
		c, ok := a.manager.SelectedCourse()
		if !ok {
			return fmt.Errorf("%w: toggle <course id>", errUsage)
		}
		id = c.ID
	} else {
		var err error
		if id, err = parseCourseID(arg); err != nil {
			return err
		}
	}

	_, err := a.manager.ToggleCompletion(ctx, id)
	return err
}

// Status prints a one-line summary of the session.
func (a *App) Status(_ context.Context) error {
	s := a.manager.Snapshot()
	user := s.User
	if user == "" {
		user = "(nobody)"
	}
	printlnFn(fmt.Sprintf("user: %s  view: %s  completed: %d/%d  scope: %s",
		user, s.View, len(s.Completed), len(s.Courses), a.config.CompletionScope))
	return nil
}

// Dump prints every stored key and value, sorted by key.
func (a *App) Dump(ctx context.Context) error {
	items, err := a.store.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		printlnFn("(store is empty)")
		return nil
	}

	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		printlnFn(fmt.Sprintf("%s = %s", k, items[k]))
	}
	return nil
}

// Reset erases the whole store after confirmation.
func (a *App) Reset(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader, "This erases all accounts and progress. Type 'yes' to continue", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		printlnFn("Reset cancelled")
		return nil
	}
	return a.manager.Reset(ctx)
}

func parseCourseID(arg string) (int, error) {
	if arg == "" {
		return 0, fmt.Errorf("%w: view <course id>", errUsage)
	}
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid course id %q", errUsage, arg)
	}
	return id, nil
}
