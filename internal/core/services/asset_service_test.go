package services_test

import (
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
)

func (s *LedgerSuite) createLaptop() *domain.FixedAsset {
	asset, err := s.svc.Asset.CreateAsset(s.ctx, testTenant, testUser, dto.CreateAssetRequest{
		AssetNumber:        "FA-001",
		Name:               "Laptop",
		AllowanceClass:     domain.ClassComputerEquipment,
		AcquisitionDate:    date(2024, time.January, 15),
		AcquisitionCost:    dec("12000"),
		DepreciationMethod: domain.StraightLine,
		UsefulLifeMonths:   12,
		ResidualValue:      dec("0"),
	})
	s.Require().NoError(err)
	return asset
}

func (s *LedgerSuite) TestCreateAsset_Validation() {
	_, err := s.svc.Asset.CreateAsset(s.ctx, testTenant, testUser, dto.CreateAssetRequest{
		AssetNumber:        "FA-X",
		Name:               "Mystery",
		AllowanceClass:     "SPACESHIP",
		AcquisitionDate:    date(2024, time.January, 1),
		AcquisitionCost:    dec("100"),
		DepreciationMethod: domain.StraightLine,
		UsefulLifeMonths:   10,
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Asset.CreateAsset(s.ctx, testTenant, testUser, dto.CreateAssetRequest{
		AssetNumber:        "FA-Y",
		Name:               "Van",
		AllowanceClass:     domain.ClassMotorVehicle,
		AcquisitionDate:    date(2024, time.January, 1),
		AcquisitionCost:    dec("100"),
		DepreciationMethod: domain.ReducingBalance,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerSuite) TestDepreciationRun() {
	asset := s.createLaptop()
	s.Equal("12000.00", asset.NetBookValue.StringFixed(2))
	s.Equal("12000.00", asset.WrittenDownValue.StringFixed(2))

	early, err := s.svc.Asset.RunDepreciation(s.ctx, testTenant, testUser, domain.Period{Year: 2023, Month: time.December})
	s.Require().NoError(err)
	s.Empty(early.Processed)
	s.Len(early.Skipped, 1)

	jan := domain.Period{Year: 2024, Month: time.January}
	run, err := s.svc.Asset.RunDepreciation(s.ctx, testTenant, testUser, jan)
	s.Require().NoError(err)
	s.Require().Len(run.Processed, 1)
	s.Empty(run.Skipped)
	s.Equal("1000.00", run.Processed[0].Amount.StringFixed(2))
	s.Equal("11000.00", run.Processed[0].NetBookValue.StringFixed(2))

	s.Equal("1000.00", s.balance("6100"))
	s.Equal("-1000.00", s.balance("1590"))

	entry, err := s.svc.Journal.GetEntry(s.ctx, testTenant, run.Processed[0].JournalEntryID)
	s.Require().NoError(err)
	s.Equal(domain.SourceDepreciation, entry.SourceModule)
	s.Equal(date(2024, time.January, 31), entry.EntryDate.UTC())

	again, err := s.svc.Asset.RunDepreciation(s.ctx, testTenant, testUser, jan)
	s.Require().NoError(err)
	s.Empty(again.Processed)
	s.Len(again.Skipped, 1)
	s.Equal("1000.00", s.balance("6100"))

	reloaded, err := s.svc.Asset.GetAsset(s.ctx, testTenant, asset.AssetID)
	s.Require().NoError(err)
	s.Equal("2024-01", reloaded.LastDepreciationPeriod)
	s.Equal("1000.00", reloaded.AccumulatedDepreciation.StringFixed(2))
}

func (s *LedgerSuite) TestDepreciationRun_MissingPostingAccountSkipsAll() {
	s.createLaptop()
	s.Require().NoError(s.svc.Account.DeactivateAccount(s.ctx, testTenant, s.accounts["6100"], testUser))

	run, err := s.svc.Asset.RunDepreciation(s.ctx, testTenant, testUser, domain.Period{Year: 2024, Month: time.January})
	s.Require().NoError(err)
	s.Empty(run.Processed)
	s.Require().Len(run.Skipped, 1)
	s.Contains(run.Skipped[0].Reason, "depreciation expense")
}

func (s *LedgerSuite) TestAllowanceClaimAndSchedule() {
	asset := s.createLaptop()

	schedule, err := s.svc.Asset.PreviewAllowanceSchedule(s.ctx, testTenant, asset.AssetID, 3)
	s.Require().NoError(err)
	s.Require().Len(schedule, 3)
	s.Equal("3000.00", schedule[0].Initial.StringFixed(2))
	s.Equal("1800.00", schedule[0].Annual.StringFixed(2))
	s.Equal("1440.00", schedule[1].Annual.StringFixed(2))

	claim, err := s.svc.Asset.ClaimAllowances(s.ctx, testTenant, testUser, 2024)
	s.Require().NoError(err)
	s.Require().Len(claim.Processed, 1)
	s.Equal("4800.00", claim.Processed[0].Total.StringFixed(2))
	s.Equal("7200.00", claim.Processed[0].WrittenDownValue.StringFixed(2))

	again, err := s.svc.Asset.ClaimAllowances(s.ctx, testTenant, testUser, 2024)
	s.Require().NoError(err)
	s.Empty(again.Processed)
	s.Len(again.Skipped, 1)

	next, err := s.svc.Asset.ClaimAllowances(s.ctx, testTenant, testUser, 2025)
	s.Require().NoError(err)
	s.Require().Len(next.Processed, 1)
	s.Equal("1440.00", next.Processed[0].Total.StringFixed(2))
}

func (s *LedgerSuite) TestAllowanceClaim_LaterYearWaitsForAcquisitionYear() {
	asset := s.createLaptop()

	late, err := s.svc.Asset.ClaimAllowances(s.ctx, testTenant, testUser, 2025)
	s.Require().NoError(err)
	s.Empty(late.Processed)
	s.Require().Len(late.Skipped, 1)
	s.Contains(late.Skipped[0].Reason, "acquisition-year claim for 2024 outstanding")

	stored, err := s.svc.Asset.GetAsset(s.ctx, testTenant, asset.AssetID)
	s.Require().NoError(err)
	s.Equal("12000.00", stored.WrittenDownValue.StringFixed(2))

	first, err := s.svc.Asset.ClaimAllowances(s.ctx, testTenant, testUser, 2024)
	s.Require().NoError(err)
	s.Require().Len(first.Processed, 1)
	s.Equal("3000.00", first.Processed[0].Initial.StringFixed(2))
	s.Equal("4800.00", first.Processed[0].Total.StringFixed(2))

	next, err := s.svc.Asset.ClaimAllowances(s.ctx, testTenant, testUser, 2025)
	s.Require().NoError(err)
	s.Require().Len(next.Processed, 1)
	s.Equal("1440.00", next.Processed[0].Total.StringFixed(2))
}

func (s *LedgerSuite) TestDisposeAsset() {
	asset := s.createLaptop()
	_, err := s.svc.Asset.RunDepreciation(s.ctx, testTenant, testUser, domain.Period{Year: 2024, Month: time.January})
	s.Require().NoError(err)
	_, err = s.svc.Asset.ClaimAllowances(s.ctx, testTenant, testUser, 2024)
	s.Require().NoError(err)

	rec, err := s.svc.Asset.DisposeAsset(s.ctx, testTenant, asset.AssetID, testUser, dto.DisposeAssetRequest{
		DisposalDate: date(2024, time.March, 1),
		Method:       domain.DisposalSale,
		Proceeds:     dec("8000"),
	})
	s.Require().NoError(err)
	s.Equal("DSP-000001", rec.DisposalNumber)
	s.Equal("11000.00", rec.NetBookValue.StringFixed(2))
	s.Equal("-3000.00", rec.BookGainLoss.StringFixed(2))
	s.Equal("7200.00", rec.WrittenDownValue.StringFixed(2))
	s.Equal("800.00", rec.TaxBalancingAmount.StringFixed(2))
	s.Equal("800.00", rec.BalancingCharge.StringFixed(2))
	s.True(rec.BalancingAllowance.IsZero())

	_, err = s.svc.Asset.DisposeAsset(s.ctx, testTenant, asset.AssetID, testUser, dto.DisposeAssetRequest{
		DisposalDate: date(2024, time.March, 2),
		Method:       domain.DisposalScrap,
	})
	s.ErrorIs(err, apperrors.ErrConflict)

	active, err := s.svc.Asset.ListActiveAssets(s.ctx, testTenant)
	s.Require().NoError(err)
	s.Empty(active)

	got, err := s.svc.Asset.GetAsset(s.ctx, testTenant, asset.AssetID)
	s.Require().NoError(err)
	s.Equal(domain.AssetDisposed, got.Status)
}

func (s *LedgerSuite) TestDisposeAsset_BeforeAcquisition() {
	asset := s.createLaptop()

	_, err := s.svc.Asset.DisposeAsset(s.ctx, testTenant, asset.AssetID, testUser, dto.DisposeAssetRequest{
		DisposalDate: date(2023, time.December, 31),
		Method:       domain.DisposalWriteOff,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}
