// Command demo is a minimal readline REPL over the embeddable relational
// engine: create a table, insert and show tuples, project/join, and
// save/load snapshots. Grounded on tuannm99-novasql/cmd/client/main.go's
// REPL shape (readline.Config, meta commands prefixed "\", a history
// file) but driving internal/relation directly instead of a SQL wire
// client — this is ambient demo tooling, not the SQL "CLI/driver harness"
// that stays out of scope for the core engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tuannm99/reldb/internal/config"
	"github.com/tuannm99/reldb/internal/persist"
	"github.com/tuannm99/reldb/internal/relation"
	"github.com/tuannm99/reldb/internal/scalar"
)

type session struct {
	cfg    *config.Config
	tables map[string]*relation.Table
}

func newSession(cfg *config.Config) *session {
	return &session{cfg: cfg, tables: map[string]*relation.Table{}}
}

func parseDomain(s string) (scalar.Domain, error) {
	switch strings.ToLower(s) {
	case "i8":
		return scalar.I8, nil
	case "i16":
		return scalar.I16, nil
	case "i32":
		return scalar.I32, nil
	case "i64":
		return scalar.I64, nil
	case "f32":
		return scalar.F32, nil
	case "f64":
		return scalar.F64, nil
	case "char":
		return scalar.Char, nil
	case "str":
		return scalar.Str, nil
	default:
		return 0, fmt.Errorf("unknown domain %q (want i8/i16/i32/i64/f32/f64/char/str)", s)
	}
}

func parseScalar(dom scalar.Domain, raw string) (scalar.Scalar, error) {
	switch dom {
	case scalar.I8, scalar.I16, scalar.I32, scalar.I64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return scalar.Scalar{}, err
		}
		switch dom {
		case scalar.I8:
			return scalar.I8Val(int8(n)), nil
		case scalar.I16:
			return scalar.I16Val(int16(n)), nil
		case scalar.I32:
			return scalar.I32Val(int32(n)), nil
		default:
			return scalar.I64Val(n), nil
		}
	case scalar.F32, scalar.F64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return scalar.Scalar{}, err
		}
		if dom == scalar.F32 {
			return scalar.F32Val(float32(f)), nil
		}
		return scalar.F64Val(f), nil
	case scalar.Char:
		r := []rune(raw)
		if len(r) != 1 {
			return scalar.Scalar{}, fmt.Errorf("char value must be one rune, got %q", raw)
		}
		return scalar.CharVal(r[0]), nil
	case scalar.Str:
		return scalar.StrVal(raw), nil
	default:
		return scalar.Scalar{}, fmt.Errorf("unsupported domain")
	}
}

// create name attr1:dom1 attr2:dom2 ... key a,b
func (s *session) create(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: create NAME attr:dom... key a,b,...")
	}
	name := args[0]

	var attrs []string
	var domains []scalar.Domain
	var key []string
	i := 1
	for ; i < len(args); i++ {
		if args[i] == "key" {
			i++
			break
		}
		parts := strings.SplitN(args[i], ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("bad column spec %q, want name:domain", args[i])
		}
		dom, err := parseDomain(parts[1])
		if err != nil {
			return err
		}
		attrs = append(attrs, parts[0])
		domains = append(domains, dom)
	}
	if i < len(args) {
		key = strings.Split(args[i], ",")
	}

	schema, err := relation.NewSchema(name, attrs, domains, key)
	if err != nil {
		return err
	}
	idxFactory, err := s.cfg.IndexFactory()
	if err != nil {
		return err
	}
	s.tables[name] = relation.NewTable(schema, idxFactory)
	fmt.Printf("DDL> create table %s (%s)\n", name, strings.Join(attrs, " "))
	return nil
}

func (s *session) insert(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: insert NAME v1 v2 ...")
	}
	tbl, ok := s.tables[args[0]]
	if !ok {
		return fmt.Errorf("no such table %q", args[0])
	}
	vals := args[1:]
	domains := tbl.Schema().Domains
	if len(vals) != len(domains) {
		return fmt.Errorf("expected %d values, got %d", len(domains), len(vals))
	}
	tup := make(relation.Tuple, len(vals))
	for i, v := range vals {
		sv, err := parseScalar(domains[i], v)
		if err != nil {
			return err
		}
		tup[i] = sv
	}
	fmt.Printf("DML> insert into %s values %s\n", args[0], tup.String())
	return tbl.Insert(tup)
}

func (s *session) show(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show NAME")
	}
	tbl, ok := s.tables[args[0]]
	if !ok {
		return fmt.Errorf("no such table %q", args[0])
	}
	fmt.Print(tbl.String())
	return nil
}

// project SRC attr1,attr2 as DST
func (s *session) doProject(args []string) error {
	if len(args) != 4 || args[2] != "as" {
		return fmt.Errorf("usage: project SRC attr1,attr2 as DST")
	}
	src, ok := s.tables[args[0]]
	if !ok {
		return fmt.Errorf("no such table %q", args[0])
	}
	attrs := strings.Split(args[1], ",")
	result, err := src.Project(attrs)
	if err != nil {
		return err
	}
	s.tables[args[3]] = result
	fmt.Printf("RA> %s.project(%s) -> %s\n", src.Name(), strings.Join(attrs, " "), args[3])
	return nil
}

// join LEFT attrL RIGHT attrR DST
func (s *session) doJoin(args []string) error {
	if len(args) != 5 {
		return fmt.Errorf("usage: join LEFT attrL RIGHT attrR DST")
	}
	left, ok := s.tables[args[0]]
	if !ok {
		return fmt.Errorf("no such table %q", args[0])
	}
	right, ok := s.tables[args[2]]
	if !ok {
		return fmt.Errorf("no such table %q", args[2])
	}
	result, err := left.Join([]string{args[1]}, []string{args[3]}, right)
	if err != nil {
		return err
	}
	s.tables[args[4]] = result
	fmt.Printf("RA> %s.join(%s, %s, %s) -> %s\n", args[0], args[1], args[3], args[2], args[4])
	return nil
}

func (s *session) saveTable(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: save NAME file")
	}
	tbl, ok := s.tables[args[0]]
	if !ok {
		return fmt.Errorf("no such table %q", args[0])
	}
	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return persist.Save(tbl, f)
}

func (s *session) loadTable(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: load file AS-NAME")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	idxFactory, err := s.cfg.IndexFactory()
	if err != nil {
		return err
	}
	tbl, err := persist.Load(f, idxFactory)
	if err != nil {
		return err
	}
	s.tables[args[1]] = tbl
	return nil
}

func (s *session) dispatch(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "create":
		return s.create(args)
	case "insert":
		return s.insert(args)
	case "show":
		return s.show(args)
	case "project":
		return s.doProject(args)
	case "join":
		return s.doJoin(args)
	case "save":
		return s.saveTable(args)
	case "load":
		return s.loadTable(args)
	case "tables":
		for name := range s.tables {
			fmt.Println(name)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q (try \\help)", cmd)
	}
}

func helpText() string {
	return `meta commands:
  \q | quit | exit             quit
  \help                        show this help

commands:
  create NAME a:dom b:dom... key a      define a table
  insert NAME v1 v2 ...                 insert a tuple
  show NAME                             print a table
  project SRC attr1,attr2 as DST        project onto attrs
  join LEFT attrL RIGHT attrR DST       equi-join
  save NAME file                        write a snapshot
  load file NAME                        read a snapshot
  tables                                list table names`
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".reldb_history"
	}
	return filepath.Join(home, ".reldb_history")
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	histPath := flag.String("history", defaultHistoryPath(), "history file path")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "reldb> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		HistoryFile:     *histPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	sess := newSession(cfg)

	fmt.Println("reldb demo — type \\help for help")
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			fmt.Println()
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "\\q" || line == "quit" || line == "exit" {
			return
		}
		if line == "\\help" {
			fmt.Println(helpText())
			continue
		}

		if err := sess.dispatch(line); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}
