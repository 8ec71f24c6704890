package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	apihttp "github.com/blueflylabor/fakeTape/api/http"
	"github.com/blueflylabor/fakeTape/device"
	"github.com/blueflylabor/fakeTape/simulator"
	"github.com/blueflylabor/fakeTape/strategy"
)

// rootOptions 命令行全局参数
type rootOptions struct {
	blockCount int
	queryCount int
	blockSize  int
	seed       int64
	compress   bool
}

// newSimulator 按命令行参数构造模拟器
func (o *rootOptions) newSimulator() *simulator.Simulator {
	opts := []simulator.Option{}
	if o.seed != 0 {
		opts = append(opts, simulator.WithSeed(o.seed))
	}
	if o.compress {
		opts = append(opts, simulator.WithTapeOptions(device.WithCompression(true)))
	}
	return simulator.New(o.blockSize, opts...)
}

// newRootCommand 构建命令树
// 不带子命令时直接执行三种策略的对比运行并打印汇总表
func newRootCommand(log *logrus.Logger) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "faketape",
		Short: "磁带设备索引策略模拟器",
		Long: "faketape 在虚拟时间模型下模拟顺序访问的磁带设备，" +
			"对比无索引、固定间隔索引与分层索引三种策略的构建与查询开销。",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComparison(cmd, log, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.IntVar(&opts.blockCount, "blocks", 10000, "磁带上的数据块数")
	flags.IntVar(&opts.queryCount, "queries", 1000, "查询次数")
	flags.IntVar(&opts.blockSize, "block-size", 4096, "块大小（字节）")
	flags.Int64Var(&opts.seed, "seed", 0, "随机数种子（0 表示按时间取种）")
	flags.BoolVar(&opts.compress, "compress", false, "启用负载压缩")

	root.AddCommand(newBenchmarkCommand(log, opts))
	root.AddCommand(newServeCommand(log, opts))
	return root
}

// runComparison 对比模式：同一数据集上运行全部内置策略并打印汇总
func runComparison(cmd *cobra.Command, log *logrus.Logger, opts *rootOptions) error {
	log.WithFields(logrus.Fields{
		"blocks":  opts.blockCount,
		"queries": opts.queryCount,
	}).Info("开始对比运行")

	sim := opts.newSimulator()
	queries := sim.GenerateQueries(opts.queryCount)

	results, err := sim.RunComparison(opts.blockCount, queries, strategy.BuiltinNames())
	if err != nil {
		return fmt.Errorf("对比运行失败: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Blocks: %d  Queries: %d  Workload: %08x\n\n",
		opts.blockCount, opts.queryCount, results[0].WorkloadFingerprint)
	fmt.Fprintf(out, "%-24s %18s %18s %12s\n",
		"Strategy", "Index Build (s)", "Avg Access (s)", "Seeks")
	for _, res := range results {
		fmt.Fprintf(out, "%-24s %18.6f %18.6f %12d\n",
			res.StrategyName, res.IndexBuildTime, res.AverageAccessTime, res.TotalSeeks)
	}

	// 以无索引为基线打印加速比
	baseline := results[0].AverageAccessTime
	if baseline > 0 {
		fmt.Fprintln(out)
		for _, res := range results[1:] {
			if res.AverageAccessTime > 0 {
				fmt.Fprintf(out, "%s speedup over %s: %.2fx\n",
					res.StrategyName, results[0].StrategyName,
					baseline/res.AverageAccessTime)
			}
		}
	}
	return nil
}

// newBenchmarkCommand 基准模式：输出真实墙钟耗时的 CSV
func newBenchmarkCommand(log *logrus.Logger, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "benchmark",
		Short: "输出各策略构建与查询的墙钟耗时 CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "strategy,index_build_time_ms,query_time_ms")

			for _, name := range strategy.BuiltinNames() {
				st, err := strategy.Create(name)
				if err != nil {
					return err
				}

				sim := opts.newSimulator()
				sim.SetStrategy(st)

				buildMs, err := sim.BenchmarkIndexBuild(opts.blockCount)
				if err != nil {
					return fmt.Errorf("策略 %s 构建基准失败: %w", name, err)
				}
				queryMs, err := sim.BenchmarkQueries(sim.GenerateQueries(opts.queryCount))
				if err != nil {
					return fmt.Errorf("策略 %s 查询基准失败: %w", name, err)
				}

				fmt.Fprintf(out, "%s,%.3f,%.3f\n", name, buildMs, queryMs)
				log.WithFields(logrus.Fields{
					"strategy": name,
					"build_ms": buildMs,
					"query_ms": queryMs,
				}).Debug("基准完成")
			}
			return nil
		},
	}
}

// newServeCommand 服务模式：启动 HTTP API
func newServeCommand(log *logrus.Logger, opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "以 HTTP 服务方式运行模拟器",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := apihttp.NewServer(addr, opts.newSimulator())
			log.WithField("addr", addr).Info("HTTP 服务启动")
			if err := srv.Start(); err != nil {
				return fmt.Errorf("HTTP 服务退出: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "监听地址")
	return cmd
}
