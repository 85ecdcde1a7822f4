package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/researchpilot/pkg/config"
)

var _ = Describe("InitViper", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "viper-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("returns viper with defaults when no config file exists", func() {
		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		Expect(v.GetString("llm.provider")).To(Equal("groq"))
		Expect(v.GetString("api.listen")).To(Equal(":8081"))
		Expect(v.GetDuration("mission.pace").Milliseconds()).To(Equal(int64(500)))
		Expect(v.GetInt("mission.recall_k")).To(Equal(3))
	})

	It("reads config file values over defaults", func() {
		data := "[search]\nprovider = \"brave\"\n"
		Expect(os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)).To(Succeed())

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.GetString("search.provider")).To(Equal("brave"))
		Expect(v.GetInt("search.max_results")).To(Equal(5))
	})

	It("env vars take precedence over config file values", func() {
		data := "[search]\nprovider = \"brave\"\n"
		Expect(os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)).To(Succeed())

		os.Setenv("PILOT_SEARCH_PROVIDER", "tavily")
		defer os.Unsetenv("PILOT_SEARCH_PROVIDER")

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.GetString("search.provider")).To(Equal("tavily"))
	})

	It("sees env vars for keys without a default", func() {
		os.Setenv("PILOT_LLM_API_KEY", "from-env")
		defer os.Unsetenv("PILOT_LLM_API_KEY")

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		cfg, err := config.FromViper(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LLM.APIKey).To(Equal("from-env"))
	})
})

var _ = Describe("FromViper", func() {
	It("materializes the defaults", func() {
		tmpDir, err := os.MkdirTemp("", "viper-test-*")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(tmpDir)

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		cfg, err := config.FromViper(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(config.NewDefaultConfig()))
	})
})

var _ = Describe("flags", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "bindflag-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("binds cobra flags to viper keys via registry", func() {
		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		cmd := &cobra.Command{Use: "test"}
		config.AddFlags(cmd, config.Flags, []string{config.FlagAPIListen, config.FlagRecallK})
		Expect(cmd.Flags().Set("listen", ":7777")).To(Succeed())
		Expect(cmd.Flags().Set("recall-k", "9")).To(Succeed())

		config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagAPIListen, config.FlagRecallK})

		Expect(v.GetString("api.listen")).To(Equal(":7777"))
		Expect(v.GetInt("mission.recall_k")).To(Equal(9))
	})

	It("falls through to config when flag not set", func() {
		data := "[api]\nlisten = \":5555\"\n"
		Expect(os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)).To(Succeed())

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		cmd := &cobra.Command{Use: "test"}
		config.AddFlags(cmd, config.Flags, []string{config.FlagAPIListen})
		config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagAPIListen})

		Expect(v.GetString("api.listen")).To(Equal(":5555"))
	})

	It("skips bindings for nonexistent registry keys", func() {
		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		cmd := &cobra.Command{Use: "test"}
		config.BindRegisteredFlags(v, cmd, config.FlagSet{}, []string{"nonexistent"})
		Expect(v.GetString("api.listen")).To(Equal(":8081"))
	})

	It("pulls name, shorthand, default, and description from the registry", func() {
		cmd := &cobra.Command{Use: "test"}
		var listen string
		config.AddStringFlag(cmd, config.Flags, config.FlagAPIListen, &listen)

		f := cmd.Flags().Lookup("listen")
		Expect(f).NotTo(BeNil())
		Expect(f.Shorthand).To(Equal("l"))
		Expect(f.DefValue).To(Equal(":8081"))
		Expect(f.Usage).To(Equal(config.Flags[config.FlagAPIListen].Description))
	})

	It("registers every mission flag", func() {
		cmd := &cobra.Command{Use: "test"}
		config.AddFlags(cmd, config.Flags, config.MissionFlags)
		for _, key := range config.MissionFlags {
			Expect(cmd.Flags().Lookup(config.Flags[key].Name)).NotTo(BeNil(), key)
		}
	})
})
