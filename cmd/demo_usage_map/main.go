package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jetstoredb/jetstore/conf"
	"github.com/jetstoredb/jetstore/logger"
	"github.com/jetstoredb/jetstore/storage/store"
	"github.com/jetstoredb/jetstore/storage/store/common"
	"github.com/jetstoredb/jetstore/storage/store/pages"
)

func main() {
	configPath := flag.String("config", "", "path to jetstore.ini")
	flag.Parse()

	cfg := conf.NewCfg()
	if *configPath != "" {
		if err := cfg.Load(*configPath); err != nil {
			fmt.Printf("loading config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
	}
	if err := logger.InitLogger(logger.LogConfig{
		ErrorLogPath: cfg.LogError,
		InfoLogPath:  cfg.LogInfos,
		LogLevel:     cfg.LogLevel,
	}); err != nil {
		os.Exit(1)
	}

	format, err := common.FormatByName(cfg.PageFormat)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		logger.Errorf("creating data dir: %v", err)
		os.Exit(1)
	}

	jetFile := store.NewJetFile(cfg, "demo_usage_map", format)
	if err := jetFile.Create(); err != nil {
		logger.Errorf("creating jet file: %v", err)
		os.Exit(1)
	}
	defer jetFile.Close()

	// Page 0: a data page carrying one inline and one reference usage map
	// declaration.
	declPage := pages.NewDataPage(format)
	inlineRow, err := pages.AppendRow(declPage, store.NewInlineMapDeclaration(format, 1), format)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	referenceRow, err := pages.AppendRow(declPage, store.NewReferenceMapDeclaration(format), format)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	declPageNum, err := jetFile.AllocateNewPage(declPage)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	inlineMap, err := store.ReadUsageMap(jetFile, declPageNum, inlineRow, format)
	if err != nil {
		logger.Errorf("reading inline map: %v", err)
		os.Exit(1)
	}
	for page := int32(1); page <= 8; page++ {
		if err := inlineMap.AddPageNumber(page); err != nil {
			logger.Errorf("inline add: %v", err)
			os.Exit(1)
		}
	}
	if err := inlineMap.RemovePageNumber(4); err != nil {
		logger.Errorf("inline remove: %v", err)
		os.Exit(1)
	}
	logger.Infof("inline map %s", inlineMap)

	referenceMap, err := store.ReadUsageMap(jetFile, declPageNum, referenceRow, format)
	if err != nil {
		logger.Errorf("reading reference map: %v", err)
		os.Exit(1)
	}
	for _, page := range []int32{3, 100, int32(format.PagesPerUsageMapPage) + 7} {
		if err := referenceMap.AddPageNumber(page); err != nil {
			logger.Errorf("reference add: %v", err)
			os.Exit(1)
		}
	}
	logger.Infof("reference map %s", referenceMap)

	for iter := referenceMap.ReverseIterator(); iter.HasNextPage(); {
		logger.Infof("reverse walk: page %d", iter.GetNextPage())
	}

	fingerprint, err := jetFile.Fingerprint()
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	logger.Infof("file fingerprint %x", fingerprint)
}
