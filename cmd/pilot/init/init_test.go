package initcmder_test

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	initcmder "github.com/papercomputeco/researchpilot/cmd/pilot/init"
	"github.com/papercomputeco/researchpilot/pkg/config"
)

func loadConfig(dir string) *config.Config {
	data, err := os.ReadFile(filepath.Join(dir, ".pilot", "config.toml"))
	Expect(err).NotTo(HaveOccurred())

	cfg := &config.Config{}
	Expect(toml.Unmarshal(data, cfg)).To(Succeed())
	return cfg
}

var _ = Describe("NewInitCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := initcmder.NewInitCmd()
		Expect(cmd.Use).To(Equal("init"))
	})

	It("rejects any arguments", func() {
		cmd := initcmder.NewInitCmd()
		Expect(cmd.Args(cmd, []string{})).To(Succeed())
		Expect(cmd.Args(cmd, []string{"extra"})).NotTo(Succeed())
	})

	It("has a --preset flag", func() {
		cmd := initcmder.NewInitCmd()
		f := cmd.Flags().Lookup("preset")
		Expect(f).NotTo(BeNil())
		Expect(f.DefValue).To(Equal(""))
	})
})

var _ = Describe("Init command execution", func() {
	var (
		tmpDir string
		out    *bytes.Buffer
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()

		origDir, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(tmpDir)).To(Succeed())
		DeferCleanup(func() { _ = os.Chdir(origDir) })

		out = &bytes.Buffer{}
	})

	execute := func(args ...string) error {
		cmd := initcmder.NewInitCmd()
		cmd.SetOut(out)
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	It("creates a .pilot directory with a default config", func() {
		Expect(execute()).To(Succeed())

		info, err := os.Stat(filepath.Join(tmpDir, ".pilot"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())

		cfg := loadConfig(tmpDir)
		Expect(cfg.Version).To(Equal(config.CurrentV))
		Expect(cfg.LLM.Provider).To(Equal("groq"))
		Expect(cfg.Search.Provider).To(Equal("duckduckgo"))
		Expect(cfg.Mission.Pace).To(Equal("500ms"))
		Expect(cfg.API.Listen).To(Equal(":8081"))
		Expect(out.String()).To(ContainSubstring("Initialized .pilot directory"))
	})

	It("applies a preset", func() {
		Expect(execute("--preset", "ollama")).To(Succeed())

		cfg := loadConfig(tmpDir)
		Expect(cfg.LLM.Provider).To(Equal("ollama"))
		Expect(cfg.Embedding.Provider).To(Equal("ollama"))
		Expect(cfg.Embedding.Dimensions).To(Equal(uint(768)))
	})

	It("rejects an unknown preset without creating anything", func() {
		Expect(execute("--preset", "nope")).To(MatchError(ContainSubstring("unknown preset")))

		_, err := os.Stat(filepath.Join(tmpDir, ".pilot"))
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("leaves an existing config alone", func() {
		pilotDir := filepath.Join(tmpDir, ".pilot")
		Expect(os.MkdirAll(pilotDir, 0o755)).To(Succeed())
		existing := []byte("[llm]\nprovider = \"anthropic\"\n")
		Expect(os.WriteFile(filepath.Join(pilotDir, "config.toml"), existing, 0o600)).To(Succeed())

		Expect(execute("--preset", "ollama")).To(Succeed())

		data, err := os.ReadFile(filepath.Join(pilotDir, "config.toml"))
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal(existing))
		Expect(out.String()).To(ContainSubstring("Already initialized"))
	})
})
