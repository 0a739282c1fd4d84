package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jtsigarra/xferdx/internal/app"
	"github.com/jtsigarra/xferdx/internal/domain/users"
	"github.com/jtsigarra/xferdx/internal/infrastructure/identity"
	"github.com/jtsigarra/xferdx/internal/infrastructure/persistence"

	"github.com/spf13/cobra"
)

// UserCommandHandler encapsulates logic for account administration via CLI.
type UserCommandHandler struct{}

// NewUserCommandHandler initializes and returns a UserCommandHandler instance.
func NewUserCommandHandler() (*UserCommandHandler, error) {
	return &UserCommandHandler{}, nil
}

// authService wires the account service over the configured database.
func (commandHandler *UserCommandHandler) authService(cmd *cobra.Command) (users.AuthService, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, err
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	userRepo, err := persistence.NewGormUserRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	tokenManager, err := identity.NewJwtTokenManager(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	return app.NewAuthService(
		userRepo,
		tokenManager,
		identity.NewBcryptHasher(),
		identity.NewLoginLimiter(&cfg.Auth),
		loggerInstance,
	)
}

// AddUserCmd creates an account with a hashed password
func (commandHandler *UserCommandHandler) AddUserCmd(cmd *cobra.Command, _ []string) error {
	username, err := cmd.Flags().GetString("username")
	if err != nil {
		return fmt.Errorf("invalid username flag: %w", err)
	}
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		return fmt.Errorf("invalid email flag: %w", err)
	}
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		return fmt.Errorf("invalid password flag: %w", err)
	}
	role, err := cmd.Flags().GetString("role")
	if err != nil {
		return fmt.Errorf("invalid role flag: %w", err)
	}
	firstName, err := cmd.Flags().GetString("first-name")
	if err != nil {
		return fmt.Errorf("invalid first-name flag: %w", err)
	}
	lastName, err := cmd.Flags().GetString("last-name")
	if err != nil {
		return fmt.Errorf("invalid last-name flag: %w", err)
	}

	service, err := commandHandler.authService(cmd)
	if err != nil {
		return err
	}

	user, err := service.Create(cmd.Context(), users.CreateUserCommand{
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		Password:  password,
	})
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	fmt.Printf("Created account %s (%s) with role %s\n", user.Username, user.ID, user.Role)
	return nil
}

// ListUsersCmd prints every account as a table
func (commandHandler *UserCommandHandler) ListUsersCmd(cmd *cobra.Command, _ []string) error {
	service, err := commandHandler.authService(cmd)
	if err != nil {
		return err
	}

	accounts, err := service.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tROLE\tEMAIL\tNAME\tCREATED")
	for _, user := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
			user.Username, user.Role, user.Email,
			user.FirstName, user.LastName,
			user.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// InitUserCommands registers the user command group with the root command.
func InitUserCommands(rootCmd *cobra.Command) error {
	handler, err := NewUserCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize user command handler: %w", err)
	}

	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Administer service accounts",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		RunE:  handler.AddUserCmd,
	}
	addCmd.Flags().String("username", "", "Unique login name")
	addCmd.Flags().String("email", "", "Email address")
	addCmd.Flags().String("password", "", "Password (min 8 characters)")
	addCmd.Flags().String("role", "", "Account role: staff, radiologist, radtech or admin")
	addCmd.Flags().String("first-name", "", "First name")
	addCmd.Flags().String("last-name", "", "Last name")
	if err := addCmd.MarkFlagRequired("username"); err != nil {
		return err
	}
	if err := addCmd.MarkFlagRequired("password"); err != nil {
		return err
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE:  handler.ListUsersCmd,
	}

	userCmd.AddCommand(addCmd)
	userCmd.AddCommand(listCmd)
	rootCmd.AddCommand(userCmd)

	return nil
}
