package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"ob-go/internal/app"
	"ob-go/internal/config"
	"ob-go/internal/gateway"
	"ob-go/internal/guard"
	"ob-go/internal/model"
	"ob-go/internal/session"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "login", "feed").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", arg)
	}
	return id, nil
}

// promptPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read otherwise (pipes, tests).
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var rootCmd = &cobra.Command{
	Use:   "ob",
	Short: "Command line client for the 01Blog platform",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		apiURL, _ := cmd.Flags().GetString("api-url")

		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Generate a new client ID
		clientID := uuid.New().String()

		// Create config with defaults
		cfg := config.NewConfig(clientID, apiURL, defaults["base_dir"])

		// Initialize config file
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Client ID: %s\n", clientID)
		fmt.Printf("API URL:   %s\n", apiURL)
		fmt.Printf("Base Dir:  %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Read config
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		// Display config
		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Client ID: %s\n", cfg.ClientID)
		fmt.Printf("API URL:   %s\n", cfg.APIURL)
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		fmt.Printf("Session:   %s (%s)\n", cfg.Session.Type, cfg.Session.Dir)
		fmt.Printf("Cache:     %s (%s)\n", cfg.Cache.Type, cfg.Cache.DataDir)
		fmt.Printf("Media:     %s\n", cfg.Media.Type)
		return nil
	},
}

// keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage session encryption keys",
}

var keysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a session encryption identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		publicKey, err := session.GenerateIdentity(cfg.Session.IdentityPath)
		if err != nil {
			return fmt.Errorf("generating identity: %w", err)
		}

		fmt.Printf("Identity written to %s\n", cfg.Session.IdentityPath)
		fmt.Printf("Public key: %s\n", publicKey)
		fmt.Println("Set session type = \"age\" in the config to encrypt stored sessions.")
		return nil
	},
}

// register command
var registerCmd = &cobra.Command{
	Use:   "register USERNAME EMAIL",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		a, err := newApp("register")
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.Register(cmd.Context(), args[0], args[1], password)
		if err != nil {
			return err
		}

		fmt.Printf("Registered and logged in as %s (%s)\n", sess.Username, sess.Role)
		return nil
	},
}

// login command
var loginCmd = &cobra.Command{
	Use:   "login USERNAME_OR_EMAIL",
	Short: "Log in and persist the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		a, err := newApp("login")
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", sess.Username, sess.Role)
		returnTo, _ := cmd.Flags().GetString("return-to")
		if returnTo != "" && returnTo != string(guard.RouteLogin) {
			fmt.Printf("Continue at %s\n", returnTo)
		}
		return nil
	},
}

// logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("logout")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Logout(); err != nil {
			return err
		}

		fmt.Println("Logged out.")
		return nil
	},
}

// whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("whoami")
		if err != nil {
			return err
		}
		defer a.Close()

		sess, info, err := a.Whoami()
		if err != nil {
			return err
		}

		fmt.Printf("Username: %s\n", sess.Username)
		fmt.Printf("Email:    %s\n", sess.Email)
		fmt.Printf("Role:     %s\n", sess.Role)
		if info != nil && !info.ExpiresAt.IsZero() {
			fmt.Printf("Token expires: %s\n", info.ExpiresAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func printPost(p model.Post) {
	liked := " "
	if p.IsLiked {
		liked = "*"
	}
	fmt.Printf("#%-5d %s %-40s  by %-15s  likes:%-4d comments:%-4d %s\n",
		p.ID, liked, p.Title, p.AuthorUsername, p.LikesCount, p.CommentsCount, p.CreatedAt)
}

// feed command
var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the personalized feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		cached, _ := cmd.Flags().GetBool("cached")

		a, err := newApp("feed")
		if err != nil {
			return err
		}
		defer a.Close()

		if cached {
			posts, fetchedAt, err := a.CachedFeed(cmd.Context())
			if err != nil {
				return err
			}
			if len(posts) == 0 {
				fmt.Println("No cached feed.")
				return nil
			}
			fmt.Printf("Cached feed from %s:\n", fetchedAt.Format("2006-01-02 15:04:05"))
			for _, p := range posts {
				printPost(p)
			}
			return nil
		}

		posts, err := a.Feed(cmd.Context())
		if gateway.IsUnreachable(err) {
			// Offline: fall back to the last cached fetch for display.
			cachedPosts, fetchedAt, cacheErr := a.CachedFeed(cmd.Context())
			if cacheErr != nil || len(cachedPosts) == 0 {
				return err
			}
			fmt.Fprintf(os.Stderr, "Server unreachable; showing feed cached at %s.\n",
				fetchedAt.Format("2006-01-02 15:04:05"))
			for _, p := range cachedPosts {
				printPost(p)
			}
			return nil
		}
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			fmt.Println("Feed is empty.")
			return nil
		}
		for _, p := range posts {
			printPost(p)
		}
		return nil
	},
}

// posts command
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse posts",
}

var postsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Show your posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cached, _ := cmd.Flags().GetBool("cached")

		a, err := newApp("posts mine")
		if err != nil {
			return err
		}
		defer a.Close()

		if cached {
			posts, fetchedAt, err := a.CachedMyPosts(cmd.Context())
			if err != nil {
				return err
			}
			if len(posts) == 0 {
				fmt.Println("No cached posts.")
				return nil
			}
			fmt.Printf("Cached posts from %s:\n", fetchedAt.Format("2006-01-02 15:04:05"))
			for _, p := range posts {
				printPost(p)
			}
			return nil
		}

		posts, err := a.MyPosts(cmd.Context())
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			fmt.Println("No posts yet.")
			return nil
		}
		for _, p := range posts {
			printPost(p)
		}
		return nil
	},
}

var postsUserCmd = &cobra.Command{
	Use:   "user USER_ID",
	Short: "Show a user's posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("posts user")
		if err != nil {
			return err
		}
		defer a.Close()

		posts, err := a.UserPosts(cmd.Context(), userID)
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			fmt.Println("No posts.")
			return nil
		}
		for _, p := range posts {
			printPost(p)
		}
		return nil
	},
}

var postsShowCmd = &cobra.Command{
	Use:   "show POST_ID",
	Short: "Show a post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("posts show")
		if err != nil {
			return err
		}
		defer a.Close()

		post, comments, err := a.ShowPost(cmd.Context(), postID)
		if err != nil {
			return err
		}

		fmt.Printf("#%d  %s  by %s  %s\n", post.ID, post.Title, post.AuthorUsername, post.CreatedAt)
		fmt.Printf("likes:%d  comments:%d\n", post.LikesCount, post.CommentsCount)
		if post.MediaURL != "" {
			fmt.Printf("media (%s): %s\n", post.MediaType, post.MediaURL)
		}
		fmt.Println()
		fmt.Println(post.Content)
		if len(comments) > 0 {
			fmt.Println()
			for _, c := range comments {
				fmt.Printf("  [%d] %s: %s\n", c.ID, c.AuthorUsername, c.Content)
			}
		}
		return nil
	},
}

var postsSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search the feed by title, content, or author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("posts search")
		if err != nil {
			return err
		}
		defer a.Close()

		posts, err := a.SearchPosts(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			fmt.Println("No matching posts.")
			return nil
		}
		for _, p := range posts {
			printPost(p)
		}
		return nil
	},
}

// post command
var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Create and manage your posts",
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a post",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")
		mediaPath, _ := cmd.Flags().GetString("media")
		mediaURL, _ := cmd.Flags().GetString("media-url")

		a, err := newApp("post create")
		if err != nil {
			return err
		}
		defer a.Close()

		post, err := a.CreatePost(cmd.Context(), title, content, mediaPath, mediaURL)
		if err != nil {
			return err
		}

		fmt.Printf("Created post #%d: %s\n", post.ID, post.Title)
		return nil
	},
}

var postEditCmd = &cobra.Command{
	Use:   "edit POST_ID",
	Short: "Edit a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0])
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")
		if title == "" && content == "" {
			return fmt.Errorf("nothing to change: pass --title and/or --content")
		}

		a, err := newApp("post edit")
		if err != nil {
			return err
		}
		defer a.Close()

		post, err := a.EditPost(cmd.Context(), postID, title, content)
		if err != nil {
			return err
		}

		fmt.Printf("Updated post #%d: %s\n", post.ID, post.Title)
		return nil
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete POST_ID",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("post delete")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeletePost(cmd.Context(), postID); err != nil {
			return err
		}

		fmt.Printf("Deleted post #%d\n", postID)
		return nil
	},
}

// like / unlike commands
var likeCmd = &cobra.Command{
	Use:   "like POST_ID",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("like")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.LikePost(cmd.Context(), postID); err != nil {
			return err
		}

		fmt.Printf("Liked post #%d\n", postID)
		return nil
	},
}

var unlikeCmd = &cobra.Command{
	Use:   "unlike POST_ID",
	Short: "Remove a like",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("unlike")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.UnlikePost(cmd.Context(), postID); err != nil {
			return err
		}

		fmt.Printf("Unliked post #%d\n", postID)
		return nil
	},
}

// comments / comment commands
var commentsCmd = &cobra.Command{
	Use:   "comments POST_ID",
	Short: "List a post's comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("comments")
		if err != nil {
			return err
		}
		defer a.Close()

		comments, err := a.Comments(cmd.Context(), postID)
		if err != nil {
			return err
		}
		if len(comments) == 0 {
			fmt.Println("No comments.")
			return nil
		}
		for _, c := range comments {
			fmt.Printf("[%d] %s  %s\n    %s\n", c.ID, c.AuthorUsername, c.CreatedAt, c.Content)
		}
		return nil
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Add and delete comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add POST_ID CONTENT",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("comment add")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.AddComment(cmd.Context(), postID, args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Added comment #%d\n", c.ID)
		return nil
	},
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete COMMENT_ID",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		commentID, err := parseID(args[0])
		if err != nil {
			return err
		}
		postID, _ := cmd.Flags().GetInt64("post")

		a, err := newApp("comment delete")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteComment(cmd.Context(), commentID, postID); err != nil {
			return err
		}

		fmt.Printf("Deleted comment #%d\n", commentID)
		return nil
	},
}

// users / profile commands
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("users")
		if err != nil {
			return err
		}
		defer a.Close()

		users, err := a.Users(cmd.Context())
		if err != nil {
			return err
		}
		for _, u := range users {
			following := ""
			if u.IsFollowing {
				following = "  [following]"
			}
			fmt.Printf("#%d  %-20s  followers:%d%s\n", u.UserID, u.Username, u.FollowersCount, following)
		}
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile [USER_ID]",
	Short: "Show a profile (yours when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var userID int64
		if len(args) > 0 {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			userID = id
		}

		a, err := newApp("profile")
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Profile(cmd.Context(), userID)
		if err != nil {
			return err
		}

		fmt.Printf("Username:  %s\n", p.Username)
		fmt.Printf("Email:     %s\n", p.Email)
		fmt.Printf("Followers: %d\n", p.FollowersCount)
		if p.IsOwnProfile {
			fmt.Println("This is your profile.")
		} else if p.IsFollowing {
			fmt.Println("You follow this user.")
		}
		return nil
	},
}

var followCmd = &cobra.Command{
	Use:   "follow USER_ID",
	Short: "Subscribe to a user's posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("follow")
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.Follow(cmd.Context(), userID)
		if err != nil {
			return err
		}

		fmt.Printf("Following user #%d (following=%t)\n", userID, resp.IsFollowing)
		return nil
	},
}

var unfollowCmd = &cobra.Command{
	Use:   "unfollow USER_ID",
	Short: "Unsubscribe from a user's posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("unfollow")
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.Unfollow(cmd.Context(), userID)
		if err != nil {
			return err
		}

		fmt.Printf("Unfollowed user #%d (following=%t)\n", userID, resp.IsFollowing)
		return nil
	},
}

// notifications command
var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show unread notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, _ := cmd.Flags().GetBool("summary")
		cached, _ := cmd.Flags().GetBool("cached")

		a, err := newApp("notifications")
		if err != nil {
			return err
		}
		defer a.Close()

		if summary {
			s, err := a.NotificationSummary(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Unread notifications: %d\n", s.UnreadCount)
			return nil
		}

		if cached {
			list, fetchedAt, err := a.CachedNotifications(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Println("No cached notifications.")
				return nil
			}
			fmt.Printf("Cached notifications from %s:\n", fetchedAt.Format("2006-01-02 15:04:05"))
			for _, n := range list {
				fmt.Printf("[%d] %s\n", n.ID, n.Message)
			}
			return nil
		}

		list, err := a.Notifications(cmd.Context())
		if gateway.IsUnreachable(err) {
			cachedList, fetchedAt, cacheErr := a.CachedNotifications(cmd.Context())
			if cacheErr != nil || len(cachedList) == 0 {
				return err
			}
			fmt.Fprintf(os.Stderr, "Server unreachable; showing notifications cached at %s.\n",
				fetchedAt.Format("2006-01-02 15:04:05"))
			for _, n := range cachedList {
				fmt.Printf("[%d] %s\n", n.ID, n.Message)
			}
			return nil
		}
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No unread notifications.")
			return nil
		}
		for _, n := range list {
			fmt.Printf("[%d] %s  %s\n", n.ID, n.CreatedAt, n.Message)
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read [NOTIFICATION_ID]",
	Short: "Mark notifications as read",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return fmt.Errorf("pass a notification id or --all")
		}

		a, err := newApp("notifications read")
		if err != nil {
			return err
		}
		defer a.Close()

		if all {
			if err := a.MarkAllNotificationsRead(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("All notifications marked read.")
			return nil
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := a.MarkNotificationRead(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Notification #%d marked read.\n", id)
		return nil
	},
}

// report command
var reportCmd = &cobra.Command{
	Use:   "report USER_ID REASON",
	Short: "Report a user for moderation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("report")
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.ReportUser(cmd.Context(), userID, args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Report #%d submitted.\n", resp.ReportID)
		return nil
	},
}

// admin command
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Moderation commands",
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("admin users")
		if err != nil {
			return err
		}
		defer a.Close()

		users, err := a.AdminUsers(cmd.Context())
		if err != nil {
			return err
		}
		for _, u := range users {
			banned := ""
			if u.Banned {
				banned = "  [banned]"
			}
			fmt.Printf("#%d  %-20s  %-30s  %s%s\n", u.UserID, u.Username, u.Email, u.Role, banned)
		}
		return nil
	},
}

var adminPostsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List all posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("admin posts")
		if err != nil {
			return err
		}
		defer a.Close()

		posts, err := a.AdminPosts(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range posts {
			hidden := ""
			if p.Hidden {
				hidden = "  [hidden]"
			}
			fmt.Printf("#%d  %-40s  by %s%s\n", p.ID, p.Title, p.AuthorUsername, hidden)
		}
		return nil
	},
}

var adminReportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("admin reports")
		if err != nil {
			return err
		}
		defer a.Close()

		reports, err := a.AdminReports(cmd.Context())
		if err != nil {
			return err
		}
		for _, r := range reports {
			fmt.Printf("#%d  %-10s  reported:%s  by:%s  %s\n", r.ID, r.Status, r.ReportedUsername, r.ReporterUsername, r.Reason)
		}
		return nil
	},
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("admin stats")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.AdminStats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Users:           %d (banned: %d)\n", s.TotalUsers, s.BannedUsers)
		fmt.Printf("Posts:           %d (hidden: %d)\n", s.TotalPosts, s.HiddenPosts)
		fmt.Printf("Reports pending: %d\n", s.PendingReports)
		return nil
	},
}

var adminBanCmd = &cobra.Command{
	Use:   "ban USER_ID REASON",
	Short: "Ban a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("admin ban")
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.BanUser(cmd.Context(), userID, args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Banned %s\n", u.Username)
		return nil
	},
}

var adminUnbanCmd = &cobra.Command{
	Use:   "unban USER_ID",
	Short: "Lift a user's ban",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("admin unban")
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.UnbanUser(cmd.Context(), userID)
		if err != nil {
			return err
		}

		fmt.Printf("Unbanned %s\n", u.Username)
		return nil
	},
}

var adminDeleteUserCmd = &cobra.Command{
	Use:   "delete-user USER_ID",
	Short: "Remove a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("admin delete-user")
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.AdminDeleteUser(cmd.Context(), userID)
		if err != nil {
			return err
		}

		fmt.Println(resp.Message)
		return nil
	},
}

var adminHideCmd = &cobra.Command{
	Use:   "hide POST_ID REASON",
	Short: "Hide a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("admin hide")
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.HidePost(cmd.Context(), postID, args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Hid post #%d\n", p.ID)
		return nil
	},
}

var adminUnhideCmd = &cobra.Command{
	Use:   "unhide POST_ID",
	Short: "Make a hidden post visible",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("admin unhide")
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.UnhidePost(cmd.Context(), postID)
		if err != nil {
			return err
		}

		fmt.Printf("Unhid post #%d\n", p.ID)
		return nil
	},
}

var adminDeletePostCmd = &cobra.Command{
	Use:   "delete-post POST_ID",
	Short: "Remove a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("admin delete-post")
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.AdminDeletePost(cmd.Context(), postID)
		if err != nil {
			return err
		}

		fmt.Println(resp.Message)
		return nil
	},
}

var adminResolveCmd = &cobra.Command{
	Use:   "resolve REPORT_ID ACTION",
	Short: "Resolve or dismiss a report (ACTION: resolve | dismiss)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reportID, err := parseID(args[0])
		if err != nil {
			return err
		}

		action := strings.ToUpper(args[1])
		switch action {
		case "RESOLVE":
			action = "RESOLVED"
		case "DISMISS":
			action = "DISMISSED"
		}

		a, err := newApp("admin resolve")
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.ResolveReport(cmd.Context(), reportID, action)
		if err != nil {
			return err
		}

		fmt.Printf("Report #%d is now %s\n", r.ID, r.Status)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().String("api-url", "http://localhost:8080/api", "Base URL of the backend API")
	configCmd.AddCommand(configListCmd)

	// keys subcommands
	keysCmd.AddCommand(keysInitCmd)

	// posts subcommands
	postsCmd.AddCommand(postsMineCmd)
	postsMineCmd.Flags().Bool("cached", false, "Show the locally cached list instead of fetching")
	postsCmd.AddCommand(postsUserCmd)
	postsCmd.AddCommand(postsShowCmd)
	postsCmd.AddCommand(postsSearchCmd)

	// post subcommands
	postCmd.AddCommand(postCreateCmd)
	postCreateCmd.Flags().String("title", "", "Post title")
	postCreateCmd.Flags().String("content", "", "Post content")
	postCreateCmd.Flags().String("media", "", "Local media file to upload")
	postCreateCmd.Flags().String("media-url", "", "Already-hosted media URL")
	postCmd.AddCommand(postEditCmd)
	postEditCmd.Flags().String("title", "", "New title")
	postEditCmd.Flags().String("content", "", "New content")
	postCmd.AddCommand(postDeleteCmd)

	// comment subcommands
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentDeleteCmd)
	commentDeleteCmd.Flags().Int64("post", 0, "Post the comment belongs to, for local count bookkeeping")

	// notifications subcommands
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.Flags().Bool("summary", false, "Show only the unread count")
	notificationsCmd.Flags().Bool("cached", false, "Show the locally cached list instead of fetching")
	notificationsReadCmd.Flags().Bool("all", false, "Mark every unread notification read")

	// admin subcommands
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminPostsCmd)
	adminCmd.AddCommand(adminReportsCmd)
	adminCmd.AddCommand(adminStatsCmd)
	adminCmd.AddCommand(adminBanCmd)
	adminCmd.AddCommand(adminUnbanCmd)
	adminCmd.AddCommand(adminDeleteUserCmd)
	adminCmd.AddCommand(adminHideCmd)
	adminCmd.AddCommand(adminUnhideCmd)
	adminCmd.AddCommand(adminDeletePostCmd)
	adminCmd.AddCommand(adminResolveCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().String("return-to", string(guard.RouteFeed), "Route to continue at after login")
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(feedCmd)
	feedCmd.Flags().Bool("cached", false, "Show the locally cached feed instead of fetching")
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(unlikeCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(followCmd)
	rootCmd.AddCommand(unfollowCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(adminCmd)
}
