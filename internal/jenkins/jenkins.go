package jenkins

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/botslacks/botslacks/internal/commands"
	"github.com/botslacks/botslacks/internal/config"
	"github.com/botslacks/botslacks/internal/retry"
)

// nonWord strips digits and punctuation when normalizing job names, so
// "My Project 2" and "myproject" land on the same key.
var nonWord = regexp.MustCompile(`[\d\W]+`)

// Module owns the jenkins command subtree. It keeps a cached job table that
// a cron schedule refreshes in the background; the cache is the module's
// exclusive state and guarded against the refresher.
type Module struct {
	client *Client
	logger *slog.Logger

	commands *commands.Registry
	root     *commands.Command

	jobs   map[string]Job // normalized name -> job
	jobsMu sync.RWMutex

	schedule string
	cron     *cron.Cron
}

// New builds the module and its subcommand registry.
func New(cfg config.JenkinsConfig, logger *slog.Logger) *Module {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Module{
		client:   NewClient(cfg.URL, cfg.Username, cfg.APIToken),
		logger:   logger.With("component", "jenkins"),
		commands: commands.NewRegistry(logger),
		jobs:     make(map[string]Job),
		schedule: cfg.RefreshSchedule,
	}

	m.commands.MustRegister(&commands.Command{
		Key:         "info",
		ArgSpec:     "<project name>",
		Description: "displays project information",
		Handler:     m.info,
	})
	m.commands.MustRegister(&commands.Command{
		Key:         "help",
		Description: "displays this message.",
		Handler:     m.help,
	})

	return m
}

// Command returns the root "jenkins" entry for registration on the bot. Its
// handler re-dispatches the remainder into the module's own sub-registry;
// the arg spec is derived from the subcommand keys at registration time.
func (m *Module) Command() *commands.Command {
	if m.root == nil {
		m.root = &commands.Command{
			Key:         "jenkins",
			Description: "looks up jenkins jobs",
			Handler:     m.process,
			Sub:         m.commands,
		}
	}
	return m.root
}

// Start performs the initial job load and schedules periodic refreshes.
func (m *Module) Start(ctx context.Context) error {
	if err := m.refresh(ctx); err != nil {
		return fmt.Errorf("initial job load: %w", err)
	}

	m.cron = cron.New()
	_, err := m.cron.AddFunc(m.schedule, func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := m.refresh(refreshCtx); err != nil {
			m.logger.Warn("job refresh failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", m.schedule, err)
	}
	m.cron.Start()
	return nil
}

// Stop halts the refresh schedule.
func (m *Module) Stop() {
	if m.cron != nil {
		m.cron.Stop()
	}
}

// refresh reloads the job cache, retrying transient fetch failures.
func (m *Module) refresh(ctx context.Context) error {
	jobs, res := retry.DoWithValue(ctx, retry.Exponential(3, time.Second, 10*time.Second), func() ([]Job, error) {
		return m.client.FetchJobs(ctx)
	})
	if res.Err != nil {
		return res.Err
	}

	m.setJobs(jobs)
	m.logger.Info("job cache refreshed", "jobs", len(jobs), "attempts", res.Attempts)
	return nil
}

func (m *Module) setJobs(jobs []Job) {
	table := make(map[string]Job, len(jobs))
	for _, job := range jobs {
		table[normalizeJobKey(job.Name)] = job
	}
	m.jobsMu.Lock()
	m.jobs = table
	m.jobsMu.Unlock()
}

func normalizeJobKey(name string) string {
	return nonWord.ReplaceAllString(strings.ToLower(name), "")
}

// findJob scores cached jobs by how many query words their normalized name
// contains and returns the best match. Ties break on the lexicographically
// smaller key so results are stable.
func (m *Module) findJob(query string) (Job, bool) {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return Job{}, false
	}

	m.jobsMu.RLock()
	defer m.jobsMu.RUnlock()

	bestScore := 0
	bestKey := ""
	for key := range m.jobs {
		score := 0
		for _, word := range words {
			if strings.Contains(key, word) {
				score++
			}
		}
		if score > bestScore || (score == bestScore && score > 0 && key < bestKey) {
			bestScore = score
			bestKey = key
		}
	}
	if bestScore == 0 {
		return Job{}, false
	}

	m.logger.Info("job matched", "key", bestKey, "query", query)
	return m.jobs[bestKey], true
}

// process is the root handler: it re-dispatches the remainder against the
// module's subcommand registry. Unknown subcommands stay silent.
func (m *Module) process(ctx context.Context, args string) (string, error) {
	res, err := commands.Dispatch(ctx, m.commands, args)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// info replies with the best-matching job for the given project name.
// No argument or no match means no reply.
func (m *Module) info(ctx context.Context, args string) (string, error) {
	if strings.TrimSpace(args) == "" {
		return "", nil
	}
	job, ok := m.findJob(args)
	if !ok {
		return "", nil
	}
	return fmt.Sprintf("Found %s (%s)", job.Name, job.URL), nil
}

// help renders the subcommand listing scoped under the jenkins command.
func (m *Module) help(ctx context.Context, args string) (string, error) {
	return commands.FormatHelp(m.commands, m.root), nil
}
