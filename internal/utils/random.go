package utils

import (
	"math/rand"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/mozillazg/go-pinyin"
	"github.com/shopspring/decimal"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateEmailLocalPartFromChineseName 取每个字拼音的前缀再拼上几位数字
func GenerateEmailLocalPartFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	localPart := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		localPart += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		localPart += string(digits[rand.Intn(len(digits))])
	}

	return localPart
}

func GenerateRandomPhone() string {
	phone := "+861"
	for i := 0; i < 10; i++ {
		phone += string(digits[rand.Intn(len(digits))])
	}
	return phone
}

func GenerateRandomWorker(emailDomainName string) *domain.Worker {
	fullName := GenerateRandomChineseName()

	return &domain.Worker{
		FullName: fullName,
		Email:    GenerateEmailLocalPartFromChineseName(fullName) + "@" + emailDomainName,
		Phone:    GenerateRandomPhone(),
	}
}

var letters = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var shiftTitles = []string{"仓库分拣", "展会接待", "餐厅帮厨", "超市理货", "活动布场", "快递装卸"}

// 生成还没有开始的班次
func GenerateRandomFutureShift(shift *domain.Shift, now time.Time) {
	shift.StartTime = now.Add(time.Duration(rand.Intn(24*14)+1) * time.Hour).Truncate(time.Hour)
	shift.EndTime = shift.StartTime.Add(time.Duration(rand.Intn(8)+4) * time.Hour)
}

// 生成正在进行的班次
func GenerateRandomOngoingShift(shift *domain.Shift, now time.Time) {
	shift.StartTime = now.Add(-time.Duration(rand.Intn(3)+1) * time.Hour).Truncate(time.Hour)
	shift.EndTime = now.Add(time.Duration(rand.Intn(4)+1) * time.Hour).Truncate(time.Hour)
}

// 生成已经结束的班次
func GenerateRandomPastShift(shift *domain.Shift, now time.Time) {
	shift.EndTime = now.Add(-time.Duration(rand.Intn(24*14)+1) * time.Hour).Truncate(time.Hour)
	shift.StartTime = shift.EndTime.Add(-time.Duration(rand.Intn(8)+4) * time.Hour)
}

// 随机生成一个班次，开始时间可能在过去也可能在将来
func GenerateRandomShift(companyID int64, now time.Time) *domain.Shift {
	shift := domain.Shift{
		CompanyID:      companyID,
		Title:          shiftTitles[rand.Intn(len(shiftTitles))] + GenerateRandomID(1, 3),
		HourlyRate:     decimal.NewFromInt(int64(rand.Intn(30) + 25)).Add(decimal.New(int64(rand.Intn(4))*25, -2)),
		VacanciesTotal: int32(rand.Intn(5) + 1),
	}

	switch rand.Intn(3) {
	case 0:
		GenerateRandomFutureShift(&shift, now)
	case 1:
		GenerateRandomOngoingShift(&shift, now)
	case 2:
		GenerateRandomPastShift(&shift, now)
	}

	return &shift
}

var applicationStatuses = []domain.ApplicationStatus{
	domain.ApplicationStatusPending,
	domain.ApplicationStatusPending,
	domain.ApplicationStatusRejected,
	domain.ApplicationStatusWaitlist,
}

// GenerateRandomApplication 生成的申请不会是 accepted，录用只能通过 FillVacancies 完成以保证名额计数正确
func GenerateRandomApplication(shift *domain.Shift, workerID int64) *domain.Application {
	app := &domain.Application{
		ShiftID:   shift.ID,
		WorkerID:  workerID,
		Status:    applicationStatuses[rand.Intn(len(applicationStatuses))],
		AppliedAt: shift.StartTime.Add(-time.Duration(rand.Intn(72*60)+30) * time.Minute),
	}

	if rand.Intn(2) == 0 {
		message := "我有相关经验，可以准时到岗"
		app.WorkerMessage = &message
	}

	return app
}

// GenerateRandomTimesheet 在班次时间的基础上随机早到或晚走几分钟
func GenerateRandomTimesheet(shift *domain.Shift, workerID int64) *domain.Timesheet {
	ts := &domain.Timesheet{
		ShiftID:  shift.ID,
		WorkerID: workerID,
	}

	// 一部分工时单没有人工确认的时间，按班次时间计算
	if rand.Intn(3) == 0 {
		return ts
	}

	start := shift.StartTime.Add(time.Duration(rand.Intn(31)-15) * time.Minute)
	end := shift.EndTime.Add(time.Duration(rand.Intn(61)-15) * time.Minute)
	ts.ManagerApprovedStart = &start
	ts.ManagerApprovedEnd = &end

	return ts
}

// 使用 Fisher-Yates 洗牌算法来生成一个随机子集
func GenerateRandomSubset[T any](arr []T) []T {
	arrCopy := append([]T{}, arr...) // 复制数组，避免修改原数组

	for i := 0; i < len(arrCopy)-1; i++ {
		j := rand.Intn(len(arrCopy)-i) + i
		arrCopy[i], arrCopy[j] = arrCopy[j], arrCopy[i]
	}

	if len(arrCopy) == 0 {
		return arrCopy
	}
	l := rand.Intn(len(arrCopy)) + 1
	return arrCopy[:l]
}
