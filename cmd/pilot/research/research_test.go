package researchcmder_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/spf13/cobra"

	researchcmder "github.com/papercomputeco/researchpilot/cmd/pilot/research"
	"github.com/papercomputeco/researchpilot/pkg/agents"
	"github.com/papercomputeco/researchpilot/pkg/dotdir"
)

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "pilot", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().BoolP("debug", "d", false, "")
	root.PersistentFlags().String("config-dir", "", "")
	root.AddCommand(researchcmder.NewResearchCmd())
	return root
}

// fakeOllama answers chat requests by system prompt.
func fakeOllama() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		reply := "insight"
		switch req.Messages[0].Content {
		case agents.PlannerSystemPrompt:
			reply = `["alpha", "beta"]`
		case agents.SynthesisSystemPrompt:
			reply = "# Final Report\n\nAll done."
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": reply},
			"done":    true,
		})
	}))
}

// sseServer replays payloads as one SSE event each.
func sseServer(status int, payloads ...string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/research" || r.URL.Query().Get("topic") == "" {
			http.NotFound(w, r)
			return
		}
		if status != http.StatusOK {
			http.Error(w, `{"error":"nope"}`, status)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, p := range payloads {
			fmt.Fprintf(w, "data: %s\n\n", p)
		}
	}))
}

var _ = Describe("research command", func() {
	var (
		configDir string
		stdout    *bytes.Buffer
		stderr    *gbytes.Buffer
	)

	BeforeEach(func() {
		tmp := GinkgoT().TempDir()
		configDir = tmp + "/.pilot"

		origDir, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(tmp)).To(Succeed())
		DeferCleanup(func() { _ = os.Chdir(origDir) })

		origHome := os.Getenv("HOME")
		Expect(os.Setenv("HOME", tmp)).To(Succeed())
		DeferCleanup(func() { _ = os.Setenv("HOME", origHome) })

		stdout = &bytes.Buffer{}
		stderr = gbytes.NewBuffer()
	})

	execute := func(args ...string) error {
		root := newRoot()
		root.SetOut(stdout)
		root.SetErr(stderr)
		root.SetArgs(append([]string{"research", "--config-dir", configDir}, args...))
		return root.Execute()
	}

	lastMission := func() *dotdir.MissionRecord {
		rec, err := dotdir.NewManager().LoadLastMission(configDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec).NotTo(BeNil())
		return rec
	}

	It("requires a topic", func() {
		Expect(execute()).NotTo(Succeed())
	})

	It("rejects --raw without --remote", func() {
		Expect(execute("fusion", "--raw")).To(MatchError(ContainSubstring("--raw requires --remote")))
	})

	Describe("in process", func() {
		It("runs a mission end to end and records it", func() {
			llm := fakeOllama()
			DeferCleanup(llm.Close)

			err := execute("fusion", "power",
				"--llm-provider", "ollama",
				"--llm-base-url", llm.URL,
				"--search-provider", "llm",
				"--pace=-1ns",
			)
			Expect(err).NotTo(HaveOccurred())

			Expect(stdout.String()).To(ContainSubstring("All done."))
			Expect(string(stderr.Contents())).To(ContainSubstring("Searching: alpha"))
			Expect(string(stderr.Contents())).To(ContainSubstring("Polishing final report..."))

			rec := lastMission()
			Expect(rec.ID).NotTo(BeEmpty())
			Expect(rec.Topic).To(Equal("fusion power"))
			Expect(rec.Plan).To(Equal([]string{"alpha", "beta"}))
			Expect(rec.Report).To(Equal("# Final Report\n\nAll done."))
			Expect(rec.Error).To(BeEmpty())
		})

		It("fails when the completion provider cannot be built", func() {
			err := execute("fusion", "--llm-provider", "mystery")
			Expect(err).To(MatchError(ContainSubstring("creating completer")))
		})
	})

	Describe("--remote", func() {
		It("follows a server's stream", func() {
			server := sseServer(http.StatusOK,
				`{"type":"stage","agent":"Planner","status":"active","msg":"Strategic planning initiated..."}`,
				`{"type":"stage","agent":"Search","status":"active","msg":"Searching: alpha"}`,
				`{"type":"complete","content":"remote report"}`,
			)
			DeferCleanup(server.Close)

			Expect(execute("fusion", "--remote", "--api-target", server.URL)).To(Succeed())
			Expect(stdout.String()).To(ContainSubstring("remote report"))

			rec := lastMission()
			Expect(rec.ID).To(BeEmpty())
			Expect(rec.Plan).To(Equal([]string{"alpha"}))
			Expect(rec.Report).To(Equal("remote report"))
		})

		It("prints the raw stream with --raw", func() {
			server := sseServer(http.StatusOK, `{"type":"complete","content":"done"}`)
			DeferCleanup(server.Close)

			Expect(execute("fusion", "--remote", "--raw", "--api-target", server.URL)).To(Succeed())
			Expect(stdout.String()).To(Equal("data: {\"type\":\"complete\",\"content\":\"done\"}\n\n"))
		})

		It("returns the failure message and records it", func() {
			server := sseServer(http.StatusOK,
				`{"type":"stage","agent":"Planner","status":"active","msg":"Strategic planning initiated..."}`,
				`{"type":"error","msg":"Orchestrator not initialized"}`,
			)
			DeferCleanup(server.Close)

			err := execute("fusion", "--remote", "--api-target", server.URL)
			Expect(err).To(MatchError("research failed: Orchestrator not initialized"))
			Expect(lastMission().Error).To(Equal("Orchestrator not initialized"))
		})

		It("reports a stream that ends early", func() {
			server := sseServer(http.StatusOK,
				`{"type":"stage","agent":"Planner","status":"active","msg":"Strategic planning initiated..."}`,
			)
			DeferCleanup(server.Close)

			err := execute("fusion", "--remote", "--api-target", server.URL)
			Expect(err).To(MatchError(researchcmder.ErrStreamEnded))
		})

		It("reports HTTP errors", func() {
			server := sseServer(http.StatusBadRequest)
			DeferCleanup(server.Close)

			err := execute("fusion", "--remote", "--api-target", server.URL)
			Expect(err).To(MatchError(ContainSubstring("HTTP 400")))
		})
	})
})
